package appmax

// OrderInput is the caller-facing shape for creating an order.
type OrderInput struct {
	CustomerHash string
	Total        float64
	Items        []OrderItemInput
	Payment      *OrderPaymentInput
}

// OrderItemInput is one line item. SKU is optional; the wire payload
// carries an explicit null when it is not set.
type OrderItemInput struct {
	Name     string
	Price    float64
	Quantity int
	SKU      string
}

// OrderPaymentInput optionally attaches payment data to order creation.
// Installments and Card apply to the credit_card method only.
type OrderPaymentInput struct {
	Method       string
	Installments int
	Card         *CardInput
}

// RefundOptions are the optional parameters of a refund. Amount is a
// pointer so "not supplied" and "supplied as zero" stay distinct; a
// supplied amount must be positive.
type RefundOptions struct {
	Reason string
	Amount *float64
}

// validateCreateOrder checks an OrderInput and transforms it into the API
// payload.
func validateCreateOrder(input OrderInput) (map[string]any, error) {
	if input.CustomerHash == "" {
		return nil, newError(ErrCodeInvalidCustomerHash, "Customer hash is required")
	}

	if input.Total <= 0 {
		return nil, newError(ErrCodeInvalidTotal, "Total must be a positive number")
	}

	if len(input.Items) == 0 {
		return nil, newError(ErrCodeInvalidItems, "Items must be a non-empty array")
	}

	if err := validateOrderItems(input.Items); err != nil {
		return nil, err
	}

	if input.Payment != nil {
		if err := validateOrderPayment(input.Payment); err != nil {
			return nil, err
		}
	}

	return transformCreateOrder(input), nil
}

func validateOrderItems(items []OrderItemInput) error {
	for i, item := range items {
		if item.Name == "" && item.Price == 0 && item.Quantity == 0 {
			return newErrorf(ErrCodeInvalidItem,
				"Item at index %d must have 'name', 'price', and 'quantity' fields", i)
		}

		if item.Name == "" {
			return newErrorf(ErrCodeInvalidItemName, "Item name at index %d cannot be empty", i)
		}

		if item.Price <= 0 {
			return newErrorf(ErrCodeInvalidItemPrice,
				"Item price at index %d must be a positive number", i)
		}

		if item.Quantity <= 0 {
			return newErrorf(ErrCodeInvalidItemQuantity,
				"Item quantity at index %d must be a positive number", i)
		}
	}

	return nil
}

func validateOrderPayment(payment *OrderPaymentInput) error {
	if err := validateMethod(payment.Method); err != nil {
		return err
	}

	if payment.Method != MethodCreditCard {
		return nil
	}

	if payment.Installments < 1 {
		return newError(ErrCodeInvalidInstallments,
			"Installments must be a positive number for credit card payments")
	}

	if payment.Card == nil {
		return newError(ErrCodeMissingCardData,
			"Card data is required for credit card payments")
	}

	return validateCardFields(payment.Card, func(field string) error {
		return newErrorf(ErrCodeMissingField, "Field '%s' is required", field)
	})
}

func transformCreateOrder(input OrderInput) map[string]any {
	items := make([]map[string]any, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, map[string]any{
			"name":  item.Name,
			"price": item.Price,
			"qty":   item.Quantity,
			"sku":   nullableString(item.SKU),
		})
	}

	payload := map[string]any{
		"customer_hash": input.CustomerHash,
		"total":         input.Total,
		"items":         items,
	}

	if input.Payment != nil {
		payment := map[string]any{
			"method": input.Payment.Method,
		}

		if input.Payment.Method == MethodCreditCard {
			payment["installments"] = input.Payment.Installments
			payment["card"] = transformCard(input.Payment.Card)
		}

		payload["payment"] = payment
	}

	return payload
}

// validateTrackingCode checks both identifiers and renames them to the
// wire keys.
func validateTrackingCode(orderHash, trackingCode string) (map[string]any, error) {
	if orderHash == "" {
		return nil, newError(ErrCodeInvalidOrderHash, "Order hash is required")
	}

	if trackingCode == "" {
		return nil, newError(ErrCodeInvalidTracking, "Tracking code is required")
	}

	return map[string]any{
		"order_hash":    orderHash,
		"tracking_code": trackingCode,
	}, nil
}

// validateRefund checks the order hash and the optional refund parameters.
// A supplied non-positive amount is rejected rather than silently dropped.
func validateRefund(orderHash string, opts *RefundOptions) (map[string]any, error) {
	if orderHash == "" {
		return nil, newError(ErrCodeInvalidOrderHash, "Order hash is required")
	}

	payload := map[string]any{
		"order_hash": orderHash,
	}

	if opts != nil {
		if opts.Reason != "" {
			payload["reason"] = opts.Reason
		}

		if opts.Amount != nil {
			if *opts.Amount <= 0 {
				return nil, newError(ErrCodeInvalidAmount, "Amount must be a positive number")
			}

			payload["amount"] = *opts.Amount
		}
	}

	return payload, nil
}
