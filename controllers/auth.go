package controllers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"deserve-iq/models"
	"deserve-iq/utils"
)

// AuthController issues and verifies bearer tokens for the single
// operator account. The account is configured through OPERATOR_EMAIL and
// OPERATOR_PASSWORD; the password is hashed once at startup and only the
// hash is kept in memory.
type AuthController struct {
	operatorEmail string
	passwordHash  string
}

func NewAuthController() AuthController {
	email := os.Getenv("OPERATOR_EMAIL")
	if email == "" {
		email = "admin@maatram.org"
	}
	password := os.Getenv("OPERATOR_PASSWORD")
	if password == "" {
		password = "password"
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash operator password: %v", err)
	}
	return AuthController{operatorEmail: email, passwordHash: hash}
}

func (c AuthController) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds models.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}

		if creds.Email != c.operatorEmail || !utils.ComparePasswords(c.passwordHash, []byte(creds.Password)) {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Invalid credentials"})
			return
		}

		token, err := utils.GenerateToken(creds.Email, 24*time.Hour)
		if err != nil {
			log.Printf("Error generating token: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to generate token"})
			return
		}

		utils.ResponseJSON(w, models.JWT{Token: token})
	}
}

// TokenVerifyMiddleware guards the /api subtree.
func (c AuthController) TokenVerifyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := utils.VerifyToken(r); err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: err.Error()})
			return
		}
		next.ServeHTTP(w, r)
	})
}
