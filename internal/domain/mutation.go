package domain

import "strings"

// Mutation describes one mutation category of the game: four tier
// percentages applied on top of the base number.
type Mutation struct {
	Emoji       string
	NameRU      string
	NameEN      string
	Percentages [4]float64
}

// Name returns the category name for a locale code.
func (m Mutation) Name(locale string) string {
	if locale == "ru" {
		return m.NameRU
	}
	return m.NameEN
}

// Tier names are shared by every mutation category.
var (
	TierNamesRU = [4]string{"Буря", "Аврора", "Вулкан", "Админ"}
	TierNamesEN = [4]string{"Storm", "Aurora", "Volcano", "Admin"}
	TierEmojis  = [4]string{"💨", "🌀", "🌋", "🪯"}
)

// TierName returns the tier name for a locale code.
func TierName(locale string, tier int) string {
	if locale == "ru" {
		return TierNamesRU[tier]
	}
	return TierNamesEN[tier]
}

// Mutations lists every category in keyboard order.
var Mutations = []Mutation{
	{Emoji: "⚪️", NameRU: "Обычная", NameEN: "Normal", Percentages: [4]float64{100, 200, 300, 400}},
	{Emoji: "🟡", NameRU: "Золотая", NameEN: "Golden", Percentages: [4]float64{50, 75, 100, 125}},
	{Emoji: "💎", NameRU: "Алмазная", NameEN: "Diamond", Percentages: [4]float64{40, 60, 80, 100}},
	{Emoji: "⚡️", NameRU: "Электрическая", NameEN: "Electric", Percentages: [4]float64{25, 37.5, 50, 62.5}},
	{Emoji: "🔥", NameRU: "Огненная", NameEN: "Fire", Percentages: [4]float64{20, 30, 40, 50}},
	{Emoji: "🦖", NameRU: "Юрская", NameEN: "Jurassic", Percentages: [4]float64{16.67, 25, 33.33, 41.67}},
	{Emoji: "❄️", NameRU: "Снежная", NameEN: "Snow", Percentages: [4]float64{16.67, 25, 33.33, 41.67}},
	{Emoji: "🎃", NameRU: "Хэллуин", NameEN: "Halloween", Percentages: [4]float64{15.38, 23.08, 30.78, 38.46}},
	{Emoji: "🦃", NameRU: "Благодарения", NameEN: "Thanksgiving", Percentages: [4]float64{14.81, 22.22, 29.63, 37.04}},
	{Emoji: "🎄", NameRU: "Рождество", NameEN: "Christmas", Percentages: [4]float64{13.33, 20, 26.67, 33.33}},
}

// MutationByEmoji looks up a category; unknown emojis fall back to the
// first (Normal) category, matching the calculator's default.
func MutationByEmoji(emoji string) Mutation {
	for _, m := range Mutations {
		if m.Emoji == emoji {
			return m
		}
	}
	return Mutations[0]
}

// Boost applies a percentage to the base number, truncating to int as
// the game does.
func Boost(number int64, percentage float64) int64 {
	return number + int64(float64(number)*percentage/100)
}

// FormatNumber renders a number with a space every three digits.
func FormatNumber(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	digits := []byte{}
	for {
		digits = append(digits, byte('0'+n%10))
		n /= 10
		if n == 0 {
			break
		}
	}
	var b strings.Builder
	for i := len(digits) - 1; i >= 0; i-- {
		b.WriteByte(digits[i])
		if i > 0 && i%3 == 0 {
			b.WriteByte(' ')
		}
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
