package service

import (
	"fmt"
	"strings"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"
	"github.com/andrey2025-maker/SelenaZoo/internal/locale"
	"github.com/andrey2025-maker/SelenaZoo/internal/repository"
)

// CalculatorService renders mutation-boost calculations.
type CalculatorService struct {
	userRepo repository.UserRepository
	locales  *locale.Manager
}

// NewCalculatorService creates a new calculator service
func NewCalculatorService(userRepo repository.UserRepository, locales *locale.Manager) *CalculatorService {
	return &CalculatorService{
		userRepo: userRepo,
		locales:  locales,
	}
}

// LocaleFor resolves a user's locale code from the stored profile.
// Unknown users get English, matching the subscription flow default.
func (s *CalculatorService) LocaleFor(userID int64) string {
	user, err := s.userRepo.GetByID(userID)
	if err != nil || user == nil {
		return "en"
	}
	return user.Language.LocaleCode()
}

// Render produces the four-tier result text for a number and mutation
// category.
func (s *CalculatorService) Render(number int64, emoji, localeCode string) string {
	mutation := domain.MutationByEmoji(emoji)

	var b strings.Builder
	b.WriteString(s.locales.Get(localeCode, "calc.results_for",
		domain.FormatNumber(number), mutation.Emoji, mutation.Name(localeCode)))

	for tier, percentage := range mutation.Percentages {
		boosted := domain.Boost(number, percentage)
		b.WriteString(fmt.Sprintf("%s<b>%s:</b> %s (+%s%%)\n",
			domain.TierEmojis[tier],
			domain.TierName(localeCode, tier),
			domain.FormatNumber(boosted),
			formatPercent(percentage),
		))
	}
	return b.String()
}

// formatPercent drops the trailing zeroes float formatting would add
// (25, 37.5, 16.67).
func formatPercent(p float64) string {
	text := fmt.Sprintf("%.2f", p)
	text = strings.TrimRight(text, "0")
	return strings.TrimRight(text, ".")
}
