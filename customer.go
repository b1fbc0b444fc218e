package appmax

import "fmt"

// CustomerInput is the caller-facing shape for creating a customer.
// Optional sub-structures are pointers or nil slices; an empty string means
// the field was not supplied.
type CustomerInput struct {
	FirstName  string
	LastName   string
	Email      string
	Telephone  string
	IP         string
	Address    *AddressInput
	CustomText string
	Products   []ProductInput
	UTM        *UTMTrackingInput
}

// AddressInput is the optional customer address.
type AddressInput struct {
	Postcode   string
	Street     string
	Number     string
	District   string
	City       string
	State      string
	Complement string
}

// ProductInput associates a product with the customer at creation time.
type ProductInput struct {
	SKU      string
	Quantity int
}

// UTMTrackingInput carries campaign attribution for the customer.
type UTMTrackingInput struct {
	Source   string
	Campaign string
	Medium   string
	Content  string
	Term     string
}

// validateCreateCustomer checks a CustomerInput and transforms it into the
// API payload. Required-field presence is checked before any format or
// range rule, so a missing field never doubles as a format error.
func validateCreateCustomer(input CustomerInput) (map[string]any, error) {
	err := requireFields(
		[2]string{input.FirstName, "firstName"},
		[2]string{input.LastName, "lastName"},
		[2]string{input.Email, "email"},
		[2]string{input.Telephone, "telephone"},
		[2]string{input.IP, "ip"},
	)
	if err != nil {
		return nil, err
	}

	if err := validateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := validateLength(input.FirstName, "firstName", 1, 100); err != nil {
		return nil, err
	}
	if err := validateLength(input.LastName, "lastName", 1, 100); err != nil {
		return nil, err
	}
	if err := validateLength(input.Telephone, "telephone", 1, 11); err != nil {
		return nil, err
	}

	if input.Address != nil {
		if err := validateCustomerAddress(input.Address); err != nil {
			return nil, err
		}
	}

	if err := validateOptionalLength(input.CustomText, "customText", 1, 255); err != nil {
		return nil, err
	}

	if err := validateCustomerProducts(input.Products); err != nil {
		return nil, err
	}

	if input.UTM != nil {
		if err := validateUTMTracking(input.UTM); err != nil {
			return nil, err
		}
	}

	return transformCreateCustomer(input), nil
}

func validateCustomerAddress(address *AddressInput) error {
	err := requireFields(
		[2]string{address.Postcode, "postcode"},
		[2]string{address.Street, "street"},
		[2]string{address.Number, "number"},
		[2]string{address.District, "district"},
		[2]string{address.City, "city"},
		[2]string{address.State, "state"},
	)
	if err != nil {
		return err
	}

	if runeLen(address.Postcode) != 8 {
		return newError(ErrCodeInvalidPostcode, "Postcode must be exactly 8 characters")
	}

	if runeLen(address.State) != 2 {
		return newError(ErrCodeInvalidState, "State must be exactly 2 characters")
	}

	if err := validateLength(address.Street, "address.street", 1, 255); err != nil {
		return err
	}
	if err := validateLength(address.Number, "address.number", 1, 56); err != nil {
		return err
	}
	if err := validateLength(address.District, "address.district", 1, 255); err != nil {
		return err
	}
	if err := validateLength(address.City, "address.city", 1, 255); err != nil {
		return err
	}

	return validateOptionalLength(address.Complement, "address.complement", 1, 255)
}

func validateCustomerProducts(products []ProductInput) error {
	for i, product := range products {
		if product.SKU == "" {
			return newErrorf(ErrCodeInvalidProduct,
				"Product at index %d must have 'sku' and 'quantity' fields", i)
		}

		if err := validateLength(product.SKU, fmt.Sprintf("products[%d].sku", i), 1, 100); err != nil {
			return err
		}

		if product.Quantity <= 0 {
			return newErrorf(ErrCodeInvalidQuantity,
				"Product quantity at index %d must be a positive number", i)
		}
	}

	return nil
}

func validateUTMTracking(utm *UTMTrackingInput) error {
	fields := []struct {
		value string
		name  string
	}{
		{utm.Source, "utmTracking.source"},
		{utm.Campaign, "utmTracking.campaign"},
		{utm.Medium, "utmTracking.medium"},
		{utm.Content, "utmTracking.content"},
		{utm.Term, "utmTracking.term"},
	}

	for _, f := range fields {
		if err := validateOptionalLength(f.value, f.name, 1, 255); err != nil {
			return err
		}
	}

	return nil
}

// transformCreateCustomer maps the validated input onto the documented
// snake_case payload. Address fields are flattened with an address_ prefix;
// UTM fields nest under "tracking" with explicit nulls for absent members.
func transformCreateCustomer(input CustomerInput) map[string]any {
	payload := map[string]any{
		"firstname": input.FirstName,
		"lastname":  input.LastName,
		"email":     input.Email,
		"telephone": input.Telephone,
		"ip":        input.IP,
	}

	if input.Address != nil {
		payload["postcode"] = input.Address.Postcode
		payload["address_street"] = input.Address.Street
		payload["address_street_number"] = input.Address.Number
		payload["address_street_district"] = input.Address.District
		payload["address_city"] = input.Address.City
		payload["address_state"] = input.Address.State

		if input.Address.Complement != "" {
			payload["address_street_complement"] = input.Address.Complement
		}
	}

	if input.CustomText != "" {
		payload["custom_txt"] = input.CustomText
	}

	if len(input.Products) > 0 {
		products := make([]map[string]any, 0, len(input.Products))
		for _, product := range input.Products {
			products = append(products, map[string]any{
				"product_sku": product.SKU,
				"product_qty": product.Quantity,
			})
		}
		payload["products"] = products
	}

	if input.UTM != nil {
		payload["tracking"] = map[string]any{
			"utm_source":   nullableString(input.UTM.Source),
			"utm_campaign": nullableString(input.UTM.Campaign),
			"utm_medium":   nullableString(input.UTM.Medium),
			"utm_content":  nullableString(input.UTM.Content),
			"utm_term":     nullableString(input.UTM.Term),
		}
	}

	return payload
}
