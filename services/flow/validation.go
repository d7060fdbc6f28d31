package flow

import (
	"strings"

	"fixora/models"
	"fixora/utils"
)

// validateServiceSelection guards the exit of the service-details step.
func validateServiceSelection(draft *models.BookingDraft) error {
	if len(draft.SelectedServiceIDs) == 0 {
		return utils.NewValidationError("services", "select at least one service to continue")
	}
	return nil
}

// validateConfirmation guards the exit of the address-selection step:
// every address and contact field except the unit must be present.
func validateConfirmation(draft *models.BookingDraft) error {
	addr := draft.Address
	switch {
	case strings.TrimSpace(addr.Street) == "":
		return utils.NewValidationError("street", "street address is required")
	case strings.TrimSpace(addr.City) == "":
		return utils.NewValidationError("city", "city is required")
	case strings.TrimSpace(addr.ZipCode) == "":
		return utils.NewValidationError("zipCode", "zip code is required")
	case strings.TrimSpace(addr.Country) == "":
		return utils.NewValidationError("country", "country is required")
	}

	contact := draft.Contact
	switch {
	case strings.TrimSpace(contact.FullName) == "":
		return utils.NewValidationError("fullName", "full name is required")
	case strings.TrimSpace(contact.Email) == "":
		return utils.NewValidationError("email", "email is required")
	case strings.TrimSpace(contact.Phone) == "":
		return utils.NewValidationError("phone", "phone number is required")
	}

	if draft.SelectedTier == "" && draft.SelectedTierID == 0 {
		return utils.NewValidationError("tier", "a service tier is required")
	}
	return nil
}
