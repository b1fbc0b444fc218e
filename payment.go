package appmax

// PaymentInput is the caller-facing shape for paying an existing order.
// Installments and Card apply to the credit_card method only.
type PaymentInput struct {
	OrderHash    string
	Method       string
	Installments int
	Card         *CardInput
}

// validateCreatePayment checks a PaymentInput and transforms it into the
// API payload. Card fields missing here are reported as MISSING_CARD_FIELD,
// unlike the order schema's MISSING_FIELD.
func validateCreatePayment(input PaymentInput) (map[string]any, error) {
	if err := requireField(input.OrderHash, "orderHash"); err != nil {
		return nil, err
	}

	if err := validateMethod(input.Method); err != nil {
		return nil, err
	}

	if input.Method == MethodCreditCard {
		if input.Installments < 1 {
			return nil, newError(ErrCodeInvalidInstallments,
				"Installments must be a positive number for credit card payments")
		}

		if input.Card == nil {
			return nil, newError(ErrCodeMissingCardData,
				"Card data is required for credit card payments")
		}

		err := validateCardFields(input.Card, func(field string) error {
			return newErrorf(ErrCodeMissingCardField, "Card field '%s' is required", field)
		})
		if err != nil {
			return nil, err
		}
	}

	return transformCreatePayment(input), nil
}

func transformCreatePayment(input PaymentInput) map[string]any {
	payload := map[string]any{
		"order_hash": input.OrderHash,
		"method":     input.Method,
	}

	if input.Method == MethodCreditCard {
		payload["installments"] = input.Installments
		payload["card"] = transformCard(input.Card)
	}

	return payload
}

// validateInstallments checks an installment lookup request.
func validateInstallments(amount float64, brand string) (map[string]any, error) {
	if amount <= 0 {
		return nil, newError(ErrCodeInvalidAmount, "Amount must be a positive number")
	}

	if brand == "" {
		return nil, newError(ErrCodeInvalidBrand, "Card brand is required")
	}

	return map[string]any{
		"amount": amount,
		"brand":  brand,
	}, nil
}

// validateTokenizeCard checks raw card data for tokenization. The card
// number is whitespace-stripped before the digit check and is sent
// stripped. The expiry check is shape-only (MM/YY or MM/YYYY); it does not
// range-check the month, matching the API contract.
func validateTokenizeCard(card CardInput) (map[string]any, error) {
	required := []struct {
		value string
		name  string
	}{
		{card.Number, "number"},
		{card.Holder, "holder"},
		{card.Expiry, "expiry"},
		{card.CVV, "cvv"},
		{card.Brand, "brand"},
	}

	for _, f := range required {
		if f.value == "" {
			return nil, newErrorf(ErrCodeMissingCardField, "Card field '%s' is required", f.name)
		}
	}

	number := stripWhitespace(card.Number)
	if !cardNumberPattern.MatchString(number) {
		return nil, newError(ErrCodeInvalidCardNumber, "Card number is invalid")
	}

	if !expiryPattern.MatchString(card.Expiry) {
		return nil, newError(ErrCodeInvalidExpiry, "Expiry date format must be MM/YY or MM/YYYY")
	}

	if !cvvPattern.MatchString(card.CVV) {
		return nil, newError(ErrCodeInvalidCVV, "CVV must be 3 or 4 digits")
	}

	return map[string]any{
		"number": number,
		"holder": card.Holder,
		"expiry": card.Expiry,
		"cvv":    card.CVV,
		"brand":  card.Brand,
	}, nil
}
