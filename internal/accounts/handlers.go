package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"

	"github.com/WildTrails/WT-Backend/internal/apperror"
	"github.com/WildTrails/WT-Backend/internal/utils"
)

type signupInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

func (in signupInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&in.PasswordConfirm, validation.Required,
			validation.By(stringEquals(in.Password, "Passwords are not the same!"))),
	)
}

func stringEquals(want, message string) validation.RuleFunc {
	return func(value interface{}) error {
		if s, _ := value.(string); s != want {
			return errors.New(message)
		}
		return nil
	}
}

// sendToken issues a fresh session token for the user, mirrors it into the
// jwt cookie and writes the sanitized user back with the token.
func sendToken(w http.ResponseWriter, code int, user *User) {
	signed, err := tokens.Issue(user.ID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	user.Sanitize()
	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.RespondData(w, code, map[string]any{
		"token": signed,
		"user":  user,
	})
}

// SignupHandler creates an account from a name/email/password/confirmation
// set and logs the new user straight in.
func SignupHandler(w http.ResponseWriter, r *http.Request) {
	var in signupInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondError(w, apperror.Validation("Invalid request body"))
		return
	}
	if err := in.Validate(); err != nil {
		utils.RespondError(w, apperror.Validation(err.Error()))
		return
	}

	// Role is never taken from the request; everyone signs up as a user.
	user := User{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     RoleUser,
	}
	if err := store.Create(&user); err != nil {
		utils.RespondError(w, err)
		return
	}

	sendToken(w, http.StatusCreated, &user)
}

// LoginHandler exchanges email+password for a session token. The failure
// message is identical for unknown email and wrong password so responses
// can't be used to enumerate accounts.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondError(w, apperror.Validation("Invalid request body"))
		return
	}
	if in.Email == "" || in.Password == "" {
		utils.RespondError(w, apperror.Validation("Please provide email and password!"))
		return
	}

	user, err := store.FindByEmail(in.Email)
	if err != nil || !ComparePassword(&user, in.Password) {
		utils.RespondError(w, apperror.Authentication("Incorrect email or password"))
		return
	}

	sendToken(w, http.StatusOK, &user)
}

// LogoutHandler overwrites the jwt cookie with a short-lived placeholder.
// Tokens held elsewhere stay valid until expiry; logout is a client affair.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    "loggedout",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
	})
	utils.RespondData(w, http.StatusOK, nil)
}

// ForgotPasswordHandler stores a hashed reset token against the account and
// mails the plaintext token. Setting the token and delivering it are a pair:
// if the mail fails, the token fields are rolled back before the error goes
// out, so a token the user never saw cannot linger.
func ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Email == "" {
		utils.RespondError(w, apperror.Validation("Please provide your email address"))
		return
	}

	user, err := store.FindByEmail(in.Email)
	if err != nil {
		utils.RespondError(w, apperror.NotFound("There is no user with that email address."))
		return
	}

	plaintext, err := store.NewResetToken(&user)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	resetURL := fmt.Sprintf("%s/api/v1/users/reset-password/%s", baseURL(r), plaintext)
	msg := Message{
		To:      user.Email,
		Subject: "Your password reset token (valid for 10 min)",
		Body: "Forgot your password? Submit a PATCH request with your new password and " +
			"password_confirm to: " + resetURL + "\nIf you didn't forget your password, please ignore this email!",
	}
	if err := mailer.Send(r.Context(), msg); err != nil {
		if clearErr := store.ClearResetToken(&user); clearErr != nil {
			utils.RespondError(w, clearErr)
			return
		}
		utils.RespondError(w, apperror.Internal("There was an error sending the email. Try again later!"))
		return
	}

	utils.RespondData(w, http.StatusOK, map[string]any{
		"message": "Token sent to email!",
	})
}

func baseURL(r *http.Request) string {
	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}
	return scheme + "://" + r.Host
}

type resetInput struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

func (in resetInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&in.PasswordConfirm, validation.Required,
			validation.By(stringEquals(in.Password, "Passwords are not the same!"))),
	)
}

// ResetPasswordHandler consumes a mailed reset token. The lookup hashes the
// presented token and requires a live expiry, so an expired or already-used
// token always fails the same way.
func ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	user, err := store.FindByResetToken(HashResetToken(chi.URLParam(r, "token")))
	if err != nil {
		utils.RespondError(w, apperror.Authentication("Token is invalid or has expired"))
		return
	}

	var in resetInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondError(w, apperror.Validation("Invalid request body"))
		return
	}
	if err := in.Validate(); err != nil {
		utils.RespondError(w, apperror.Validation(err.Error()))
		return
	}

	if err := store.SetPassword(&user, in.Password); err != nil {
		utils.RespondError(w, err)
		return
	}

	sendToken(w, http.StatusOK, &user)
}

// UpdatePasswordHandler lets a logged-in user rotate their password after
// re-proving the current one. Every previously issued token goes stale.
func UpdatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	account, ok := utils.GetAccountFromContext(r.Context())
	if !ok {
		utils.RespondError(w, apperror.Authentication("You are not logged in! Please log in to get access."))
		return
	}

	var in struct {
		PasswordCurrent string `json:"password_current"`
		resetInput
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondError(w, apperror.Validation("Invalid request body"))
		return
	}
	if err := in.resetInput.Validate(); err != nil {
		utils.RespondError(w, apperror.Validation(err.Error()))
		return
	}

	user, err := store.FindByID(account.ID)
	if err != nil {
		utils.RespondError(w, apperror.Authentication("The user belonging to this token does no longer exist."))
		return
	}
	if !ComparePassword(&user, in.PasswordCurrent) {
		utils.RespondError(w, apperror.Authentication("Your current password is wrong."))
		return
	}

	if err := store.SetPassword(&user, in.Password); err != nil {
		utils.RespondError(w, err)
		return
	}

	sendToken(w, http.StatusOK, &user)
}

// MeHandler returns the authenticated user's own record.
func MeHandler(w http.ResponseWriter, r *http.Request) {
	account, _ := utils.GetAccountFromContext(r.Context())

	user, err := store.FindByID(account.ID)
	if err != nil {
		utils.RespondError(w, apperror.NotFound("No user found with that ID"))
		return
	}

	utils.RespondData(w, http.StatusOK, map[string]any{"user": user})
}

// UpdateMeHandler updates the caller's own profile. Password changes are
// refused here; they must go through the update-password flow so the
// change stamp and token staleness stay correct.
func UpdateMeHandler(w http.ResponseWriter, r *http.Request) {
	account, _ := utils.GetAccountFromContext(r.Context())

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondError(w, apperror.Validation("Invalid request body"))
		return
	}
	if _, ok := body["password"]; ok {
		utils.RespondError(w, apperror.Validation(
			"This route is not for password updates. Please use /update-password."))
		return
	}
	if _, ok := body["password_confirm"]; ok {
		utils.RespondError(w, apperror.Validation(
			"This route is not for password updates. Please use /update-password."))
		return
	}

	patch := map[string]any{}
	for _, field := range []string{"name", "email", "photo"} {
		if value, ok := body[field]; ok {
			patch[field] = value
		}
	}
	if email, ok := patch["email"].(string); ok {
		if err := validation.Validate(email, validation.Required, is.Email); err != nil {
			utils.RespondError(w, apperror.Validation("Please provide a valid email address"))
			return
		}
	}

	user, err := store.FindByID(account.ID)
	if err != nil {
		utils.RespondError(w, apperror.NotFound("No user found with that ID"))
		return
	}
	if err := store.UpdateProfile(&user, patch); err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondData(w, http.StatusOK, map[string]any{"user": user})
}

// AdminUpdateUserHandler patches another account's profile and role. The
// patch is filtered to known columns, and password-family keys are refused
// outright so every credential write goes through the hash pipeline.
func AdminUpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondError(w, apperror.Validation("Invalid ID: "+raw))
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondError(w, apperror.Validation("Invalid request body"))
		return
	}
	for _, key := range []string{"password", "password_confirm", "hashed_password"} {
		if _, ok := body[key]; ok {
			utils.RespondError(w, apperror.Validation(
				"This route is not for password updates. Please use /update-password."))
			return
		}
	}

	patch := map[string]any{}
	for _, field := range []string{"name", "email", "photo", "role"} {
		if value, ok := body[field]; ok {
			patch[field] = value
		}
	}
	if email, ok := patch["email"].(string); ok {
		if err := validation.Validate(email, validation.Required, is.Email); err != nil {
			utils.RespondError(w, apperror.Validation("Please provide a valid email address"))
			return
		}
	}
	if role, ok := patch["role"]; ok {
		switch role {
		case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		default:
			utils.RespondError(w, apperror.Validation("Invalid role"))
			return
		}
	}

	user, err := store.FindByID(id.String())
	if err != nil {
		utils.RespondError(w, apperror.NotFound("No document found with that ID"))
		return
	}
	if err := store.UpdateProfile(&user, patch); err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondData(w, http.StatusOK, map[string]any{"user": user})
}

// DeleteMeHandler soft-deletes the caller's account; the row survives but
// the account vanishes from every default lookup, including login.
func DeleteMeHandler(w http.ResponseWriter, r *http.Request) {
	account, _ := utils.GetAccountFromContext(r.Context())

	if err := store.Deactivate(account.ID); err != nil {
		utils.RespondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
