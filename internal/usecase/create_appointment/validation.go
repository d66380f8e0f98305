package create_appointment

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if !req.ResourceKind.Valid() {
		return fmt.Errorf("%w: unknown resource kind %q", ErrInvalidInput, req.ResourceKind)
	}

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	// Walk-in идентифицируется ровно одним контактом: email или телефоном
	if req.IsWalkIn() {
		if err := validateContact(req); err != nil {
			return err
		}
	}

	if req.StartTime != nil && req.StartTime.Before(now) {
		return fmt.Errorf("%w: startTime must not be in the past", ErrInvalidInput)
	}

	return nil
}

// validateContact проверяет, что передан ровно один контакт
func validateContact(req *Request) error {
	hasEmail := req.CustomerEmail != nil && *req.CustomerEmail != ""
	hasPhone := req.CustomerPhone != nil && *req.CustomerPhone != ""

	if hasEmail == hasPhone {
		return fmt.Errorf("%w: exactly one of customerEmail or customerPhone is required", ErrInvalidInput)
	}

	return nil
}
