package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LoginState string

const (
	LoggedIn  LoginState = "loggedin"
	LoggedOut LoginState = "loggedout"
)

// NotAvailable fills the profile fields of sellers created through the
// console signup, which only asks for contact details.
const NotAvailable = "Not Available"

type Seller struct {
	ID              primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	SellerID        string             `json:"sellerId" bson:"sellerId"`
	Name            string             `json:"name" bson:"name"`
	Email           string             `json:"email" bson:"email"`
	Password        string             `json:"-" bson:"password"`
	PhoneNumber     string             `json:"phoneNumber" bson:"phoneNumber"`
	BusinessName    string             `json:"businessName" bson:"businessName"`
	BusinessAddress string             `json:"businessAddress" bson:"businessAddress"`
	BusinessType    string             `json:"businessType" bson:"businessType"`
	EmailVerified   bool               `json:"emailVerified" bson:"emailVerified"`
	PhoneVerified   bool               `json:"phoneVerified" bson:"phoneVerified"`
	LoggedIn        LoginState         `json:"loggedIn" bson:"loggedIn"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Verified reports whether either contact channel has been confirmed.
func (s Seller) Verified() bool {
	return s.EmailVerified || s.PhoneVerified
}

// SellerProfile is the public view of a seller.
type SellerProfile struct {
	Name            string `json:"name"`
	BusinessName    string `json:"businessName"`
	BusinessAddress string `json:"businessAddress"`
	BusinessType    string `json:"businessType"`
}

func (s Seller) Profile() SellerProfile {
	return SellerProfile{
		Name:            s.Name,
		BusinessName:    s.BusinessName,
		BusinessAddress: s.BusinessAddress,
		BusinessType:    s.BusinessType,
	}
}
