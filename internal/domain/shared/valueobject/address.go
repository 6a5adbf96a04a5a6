package valueobject

import (
	"errors"
	"strings"
)

// AddressType distinguishes delivery address kinds
type AddressType string

const (
	AddressTypeHome   AddressType = "home"
	AddressTypeOffice AddressType = "office"
)

// Address is an immutable delivery address snapshot
type Address struct {
	Line1    string      `json:"line1"`
	Line2    string      `json:"line2,omitempty"`
	City     string      `json:"city"`
	State    string      `json:"state"`
	Pincode  string      `json:"pincode"`
	Landmark string      `json:"landmark,omitempty"`
	Type     AddressType `json:"type"`
}

// NewAddress creates a validated Address
func NewAddress(line1, line2, city, state, pincode, landmark string, addrType AddressType) (Address, error) {
	if strings.TrimSpace(line1) == "" {
		return Address{}, errors.New("address line1 is required")
	}
	if strings.TrimSpace(city) == "" {
		return Address{}, errors.New("address city is required")
	}
	if strings.TrimSpace(pincode) == "" {
		return Address{}, errors.New("address pincode is required")
	}
	if addrType == "" {
		addrType = AddressTypeHome
	}
	if addrType != AddressTypeHome && addrType != AddressTypeOffice {
		return Address{}, errors.New("address type must be home or office")
	}
	return Address{
		Line1:    strings.TrimSpace(line1),
		Line2:    strings.TrimSpace(line2),
		City:     strings.TrimSpace(city),
		State:    strings.TrimSpace(state),
		Pincode:  strings.TrimSpace(pincode),
		Landmark: strings.TrimSpace(landmark),
		Type:     addrType,
	}, nil
}

// String returns a single-line rendering of the address
func (a Address) String() string {
	parts := make([]string, 0, 6)
	for _, p := range []string{a.Line1, a.Line2, a.Landmark, a.City, a.State, a.Pincode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// CustomerInfo is the customer snapshot frozen onto an order at checkout.
// Later edits to the customer's profile never change historical orders.
type CustomerInfo struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
}

// NewCustomerInfo creates a validated customer snapshot
func NewCustomerInfo(name, email, phone string, address Address) (CustomerInfo, error) {
	if strings.TrimSpace(name) == "" {
		return CustomerInfo{}, errors.New("customer name is required")
	}
	if strings.TrimSpace(email) == "" && strings.TrimSpace(phone) == "" {
		return CustomerInfo{}, errors.New("customer email or phone is required")
	}
	return CustomerInfo{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Phone:   strings.TrimSpace(phone),
		Address: address,
	}, nil
}
