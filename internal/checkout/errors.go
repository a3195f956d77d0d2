package checkout

import "errors"

var (
	ErrMissingContact   = errors.New("customer name and whatsapp number are required")
	ErrEmptyCart        = errors.New("cart is empty, nothing to checkout")
	ErrCheckoutInFlight = errors.New("a checkout is already in progress")
)
