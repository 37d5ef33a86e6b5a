package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/app"
	"github.com/allisson/credvault/internal/config"
	identityDomain "github.com/allisson/credvault/internal/identity/domain"
	identityUseCase "github.com/allisson/credvault/internal/identity/usecase"
)

// RunCreateUser bootstraps a user account from the command line.
// Intended for creating the first administrator before any token exists.
// Outputs the created user and its bearer token in either text or JSON
// format. The token is shown only here; afterwards it can only be replaced
// by logging in.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	username string,
	email string,
	password string,
	isAdmin bool,
	privilegeID string,
	format string,
	io IOTuple,
) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	userUseCase, err := container.UserUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize user use case: %w", err)
	}

	return createUser(ctx, userUseCase, logger, username, email, password, isAdmin, privilegeID, format, io)
}

// createUser validates the flags, creates the user, and writes the result.
func createUser(
	ctx context.Context,
	userUseCase identityUseCase.UserUseCase,
	logger *slog.Logger,
	username string,
	email string,
	password string,
	isAdmin bool,
	privilegeID string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new user", slog.String("username", username))

	input := identityUseCase.CreateUserInput{
		Username:             username,
		Email:                email,
		Password:             password,
		PasswordConfirmation: password,
		IsAdmin:              isAdmin,
	}

	if privilegeID != "" {
		id, err := uuid.Parse(privilegeID)
		if err != nil {
			return fmt.Errorf("invalid privilege id: %w", err)
		}
		input.PrivilegeID = &id
	}

	user, token, err := userUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		outputUserJSON(user, token, io.Writer)
	} else {
		outputUserText(user, token, io.Writer)
	}

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username),
		slog.Bool("is_admin", user.IsAdmin),
	)

	return nil
}

// outputUserText outputs the result in human-readable text format.
func outputUserText(user *identityDomain.User, token string, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nUser created successfully!")
	_, _ = fmt.Fprintf(writer, "User ID: %s\n", user.ID.String())
	_, _ = fmt.Fprintf(writer, "Username: %s\n", user.Username)
	_, _ = fmt.Fprintf(writer, "Email: %s\n", user.Email)
	_, _ = fmt.Fprintf(writer, "Admin: %t\n", user.IsAdmin)
	_, _ = fmt.Fprintf(writer, "Bearer token: %s\n", token)
	_, _ = fmt.Fprintln(writer, "\nSave the token now; it is not shown again.")
}

// outputUserJSON outputs the result in JSON format for machine consumption.
func outputUserJSON(user *identityDomain.User, token string, writer io.Writer) {
	result := map[string]interface{}{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"email":    user.Email,
		"is_admin": user.IsAdmin,
		"token":    token,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
