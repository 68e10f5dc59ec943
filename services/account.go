package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"mera-bestie/models"
	"mera-bestie/utils"
)

// maxSellerIDAttempts bounds the search for an unused seller id. With 90000
// possible ids this is only reached when the id space is nearly exhausted.
const maxSellerIDAttempts = 10

// phonePattern accepts local and international numbers once separators are
// stripped: an optional leading + followed by 7 to 15 digits.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration cannot fail: the tag name is fixed and unique.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(phoneSeparators.Replace(fl.Field().String()))
	})
	return v
}

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

func validPhone(phone string) bool {
	return validate.Var(phone, "required,phone") == nil
}

type AccountService struct {
	users   UserRepository
	sellers SellerRepository
	ids     utils.IDs
	logger  *zap.Logger
	now     func() time.Time
}

func NewAccountService(users UserRepository, sellers SellerRepository, ids utils.IDs, logger *zap.Logger) *AccountService {
	return &AccountService{
		users:   users,
		sellers: sellers,
		ids:     ids,
		logger:  logger,
		now:     time.Now,
	}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// Register creates an open user account and returns it.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if !validEmail(in.Email) {
		return nil, validationError("Invalid email format")
	}
	if !validPhone(in.Phone) {
		return nil, validationError("Invalid phone number format")
	}
	if in.Name == "" || in.Password == "" {
		return nil, validationError("Name and password are required")
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, internalError("Error registering user", err)
	}
	if existing != nil {
		return nil, conflictError("User already exists")
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, internalError("Error registering user", err)
	}

	now := s.now()
	user := &models.User{
		UserID:        s.ids.UserID(),
		Name:          in.Name,
		Email:         in.Email,
		Password:      hashed,
		Phone:         in.Phone,
		AccountStatus: models.AccountOpen,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, conflictError("User already exists")
		}
		return nil, internalError("Error registering user", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.UserID))
	return user, nil
}

// Login checks credentials first and account status second, so a wrong
// password never reveals whether an account is suspended.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, internalError("Error logging in", err)
	}
	if user == nil || !utils.CheckPassword(user.Password, password) {
		return nil, authError("Invalid email or password")
	}

	switch user.AccountStatus {
	case models.AccountOpen:
	case models.AccountSuspended:
		return nil, forbiddenError("Account is suspended")
	case models.AccountBlocked:
		return nil, forbiddenError("Account is blocked")
	default:
		// closed and anything unrecognised
		return nil, validationError("Invalid account status")
	}
	return user, nil
}

func (s *AccountService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		return nil, internalError("Error fetching user details", err)
	}
	if user == nil {
		return nil, notFoundError("User not found")
	}
	return user, nil
}

type SellerSignupInput struct {
	Name            string `json:"name"`
	EmailID         string `json:"emailId"`
	PhoneNumber     string `json:"phoneNumber"`
	Password        string `json:"password"`
	BusinessName    string `json:"businessName"`
	BusinessAddress string `json:"businessAddress"`
	BusinessType    string `json:"businessType"`
}

// SellerSignup registers an unverified seller. Profile fields left empty are
// stored as "Not Available".
func (s *AccountService) SellerSignup(ctx context.Context, in SellerSignupInput) (*models.Seller, error) {
	in.EmailID = strings.TrimSpace(in.EmailID)
	if !validEmail(in.EmailID) {
		return nil, validationError("Invalid email format")
	}
	if !validPhone(in.PhoneNumber) {
		return nil, validationError("Invalid phone number format")
	}
	if in.Password == "" {
		return nil, validationError("Password is required")
	}

	existing, err := s.sellers.FindByEmail(ctx, in.EmailID)
	if err != nil {
		return nil, internalError("Error registering seller", err)
	}
	if existing != nil {
		return nil, conflictError("Seller already exists")
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, internalError("Error registering seller", err)
	}

	sellerID, err := s.uniqueSellerID(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	seller := &models.Seller{
		SellerID:        sellerID,
		Name:            orNotAvailable(in.Name),
		Email:           in.EmailID,
		Password:        hashed,
		PhoneNumber:     in.PhoneNumber,
		BusinessName:    orNotAvailable(in.BusinessName),
		BusinessAddress: orNotAvailable(in.BusinessAddress),
		BusinessType:    orNotAvailable(in.BusinessType),
		LoggedIn:        models.LoggedOut,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.sellers.Create(ctx, seller); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, conflictError("Seller already exists")
		}
		return nil, internalError("Error registering seller", err)
	}

	s.logger.Info("seller registered", zap.String("seller_id", seller.SellerID))
	return seller, nil
}

func (s *AccountService) uniqueSellerID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxSellerIDAttempts; attempt++ {
		candidate := s.ids.SellerID()
		existing, err := s.sellers.FindBySellerID(ctx, candidate)
		if err != nil {
			return "", internalError("Error registering seller", err)
		}
		if existing == nil {
			return candidate, nil
		}
		s.logger.Debug("seller id taken, retrying", zap.String("seller_id", candidate), zap.Int("attempt", attempt+1))
	}
	s.logger.Error("seller id space exhausted", zap.Int("attempts", maxSellerIDAttempts))
	return "", internalError("Error registering seller", errors.New("could not allocate a unique seller id"))
}

func orNotAvailable(v string) string {
	if strings.TrimSpace(v) == "" {
		return models.NotAvailable
	}
	return v
}

// SellerLogin authenticates a seller by id plus email or phone.
func (s *AccountService) SellerLogin(ctx context.Context, sellerID, emailOrPhone, password string) (*models.Seller, error) {
	seller, err := s.sellers.FindByCredentials(ctx, sellerID, emailOrPhone)
	if err != nil {
		return nil, internalError("Error logging in", err)
	}
	if seller == nil || !utils.CheckPassword(seller.Password, password) {
		return nil, authError("Invalid credentials")
	}
	return seller, nil
}

// ConsoleLogin is the seller console login. Unlike SellerLogin it rejects
// sellers with no verified contact channel and records the login state.
func (s *AccountService) ConsoleLogin(ctx context.Context, sellerID, emailOrPhone, password string) (*models.Seller, error) {
	if sellerID == "" || emailOrPhone == "" || password == "" {
		return nil, validationError("Missing required fields")
	}
	if !validEmail(emailOrPhone) && !validPhone(emailOrPhone) {
		return nil, validationError("Invalid email or phone format")
	}

	seller, err := s.sellers.FindByCredentials(ctx, sellerID, emailOrPhone)
	if err != nil {
		return nil, internalError("Error logging in", err)
	}
	if seller == nil {
		return nil, authError("Invalid credentials")
	}
	if !seller.Verified() {
		return nil, unverifiedError("Account not verified")
	}
	if !utils.CheckPassword(seller.Password, password) {
		return nil, authError("Invalid credentials")
	}

	if err := s.sellers.SetLoginState(ctx, seller.SellerID, models.LoggedIn); err != nil {
		return nil, internalError("Error logging in", err)
	}
	seller.LoggedIn = models.LoggedIn
	return seller, nil
}

// ConsoleLogout records the seller as logged out.
func (s *AccountService) ConsoleLogout(ctx context.Context, sellerID string) error {
	if sellerID == "" {
		return validationError("Seller ID is required")
	}
	seller, err := s.GetSeller(ctx, sellerID)
	if err != nil {
		return err
	}
	if err := s.sellers.SetLoginState(ctx, seller.SellerID, models.LoggedOut); err != nil {
		return internalError("Error logging out", err)
	}
	return nil
}

func (s *AccountService) GetSeller(ctx context.Context, sellerID string) (*models.Seller, error) {
	if sellerID == "" {
		return nil, validationError("Seller ID is required")
	}
	seller, err := s.sellers.FindBySellerID(ctx, sellerID)
	if err != nil {
		return nil, internalError("Error fetching seller details", err)
	}
	if seller == nil {
		return nil, notFoundError("Seller not found")
	}
	return seller, nil
}
