package appmax

// CardInput carries credit-card data in one of two mutually exclusive
// variants: tokenized (Token, Holder, Brand) or raw (Number, Holder,
// Expiry, CVV, Brand). The variant is chosen once, by whether Number is
// set; the other variant's fields are then ignored entirely, so a payload
// can never mix both forms.
type CardInput struct {
	Token  string
	Number string
	Holder string
	Expiry string
	CVV    string
	Brand  string
}

// isRaw reports whether the raw-number variant was supplied. This is the
// single discrimination point for card validation and transformation.
func (c *CardInput) isRaw() bool {
	return c.Number != ""
}

// validateCardFields checks the required fields of the detected variant.
// missing builds the error, since the create-order and create-payment
// schemas report missing card fields under different codes.
func validateCardFields(card *CardInput, missing func(field string) error) error {
	type req struct {
		value string
		name  string
	}

	var required []req
	if card.isRaw() {
		required = []req{
			{card.Number, "number"},
			{card.Holder, "holder"},
			{card.Expiry, "expiry"},
			{card.CVV, "cvv"},
			{card.Brand, "brand"},
		}
	} else {
		required = []req{
			{card.Token, "token"},
			{card.Holder, "holder"},
			{card.Brand, "brand"},
		}
	}

	for _, f := range required {
		if f.value == "" {
			return missing(f.name)
		}
	}

	return nil
}

// transformCard projects the detected variant onto the wire shape. The raw
// variant keeps number/expiry/cvv; the tokenized variant strips them.
func transformCard(card *CardInput) map[string]any {
	if card.isRaw() {
		return map[string]any{
			"number": card.Number,
			"holder": card.Holder,
			"expiry": card.Expiry,
			"cvv":    card.CVV,
			"brand":  card.Brand,
		}
	}

	return map[string]any{
		"token":  card.Token,
		"holder": card.Holder,
		"brand":  card.Brand,
	}
}

// Payment methods accepted by the API.
const (
	MethodCreditCard = "credit_card"
	MethodBillet     = "billet"
	MethodPix        = "pix"
)

var validMethods = []string{MethodCreditCard, MethodBillet, MethodPix}

// validateMethod checks the payment method against the accepted set.
// An empty method is a missing field, reported before the format check.
func validateMethod(method string) error {
	if err := requireField(method, "method"); err != nil {
		return err
	}

	for _, valid := range validMethods {
		if method == valid {
			return nil
		}
	}

	return newError(ErrCodeInvalidMethod,
		"Payment method must be one of: credit_card, billet, pix")
}
