package app

import (
	"fmt"

	identityRepository "github.com/allisson/credvault/internal/identity/repository"
	identityService "github.com/allisson/credvault/internal/identity/service"
	identityUseCase "github.com/allisson/credvault/internal/identity/usecase"
)

// PasswordService returns the Argon2id password hashing service.
func (c *Container) PasswordService() identityService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = identityService.NewPasswordService()
	})
	return c.passwordService
}

// TokenService returns the bearer token service.
func (c *Container) TokenService() identityService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = identityService.NewTokenService()
	})
	return c.tokenService
}

// UserRepository returns the user repository instance.
func (c *Container) UserRepository() (identityUseCase.UserRepository, error) {
	c.userRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["userRepo"] = fmt.Errorf("failed to get database for user repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.userRepo = identityRepository.NewMySQLUserRepository(db)
		case "postgres":
			c.userRepo = identityRepository.NewPostgreSQLUserRepository(db)
		default:
			c.initErrors["userRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["userRepo"]; exists {
		return nil, err
	}
	return c.userRepo, nil
}

// PrivilegeRepository returns the privilege repository instance.
func (c *Container) PrivilegeRepository() (identityUseCase.PrivilegeRepository, error) {
	c.privilegeRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["privilegeRepo"] = fmt.Errorf("failed to get database for privilege repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.privilegeRepo = identityRepository.NewMySQLPrivilegeRepository(db)
		case "postgres":
			c.privilegeRepo = identityRepository.NewPostgreSQLPrivilegeRepository(db)
		default:
			c.initErrors["privilegeRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["privilegeRepo"]; exists {
		return nil, err
	}
	return c.privilegeRepo, nil
}

// AssignmentRepository returns the user assignment repository instance.
func (c *Container) AssignmentRepository() (identityUseCase.AssignmentRepository, error) {
	c.assignmentRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["assignmentRepo"] = fmt.Errorf("failed to get database for assignment repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.assignmentRepo = identityRepository.NewMySQLAssignmentRepository(db)
		case "postgres":
			c.assignmentRepo = identityRepository.NewPostgreSQLAssignmentRepository(db)
		default:
			c.initErrors["assignmentRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["assignmentRepo"]; exists {
		return nil, err
	}
	return c.assignmentRepo, nil
}

// AuthUseCase returns the authentication use case instance.
func (c *Container) AuthUseCase() (identityUseCase.AuthUseCase, error) {
	c.authUseCaseInit.Do(func() {
		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["authUseCase"] = err
			return
		}

		useCase := identityUseCase.NewAuthUseCase(userRepo, c.PasswordService(), c.TokenService())

		bm, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["authUseCase"] = err
			return
		}
		if bm != nil {
			useCase = identityUseCase.NewAuthUseCaseWithMetrics(useCase, bm)
		}

		c.authUseCase = useCase
	})
	if err, exists := c.initErrors["authUseCase"]; exists {
		return nil, err
	}
	return c.authUseCase, nil
}

// UserUseCase returns the user administration use case instance.
func (c *Container) UserUseCase() (identityUseCase.UserUseCase, error) {
	c.userUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["userUseCase"] = err
			return
		}

		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["userUseCase"] = err
			return
		}

		privilegeRepo, err := c.PrivilegeRepository()
		if err != nil {
			c.initErrors["userUseCase"] = err
			return
		}

		assignmentRepo, err := c.AssignmentRepository()
		if err != nil {
			c.initErrors["userUseCase"] = err
			return
		}

		secretRepo, err := c.SecretRepository()
		if err != nil {
			c.initErrors["userUseCase"] = err
			return
		}

		useCase := identityUseCase.NewUserUseCase(
			txManager,
			userRepo,
			privilegeRepo,
			assignmentRepo,
			secretRepo,
			c.PasswordService(),
			c.TokenService(),
		)

		bm, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["userUseCase"] = err
			return
		}
		if bm != nil {
			useCase = identityUseCase.NewUserUseCaseWithMetrics(useCase, bm)
		}

		c.userUseCase = useCase
	})
	if err, exists := c.initErrors["userUseCase"]; exists {
		return nil, err
	}
	return c.userUseCase, nil
}

// PrivilegeUseCase returns the privilege management use case instance.
func (c *Container) PrivilegeUseCase() (identityUseCase.PrivilegeUseCase, error) {
	c.privilegeUseCaseInit.Do(func() {
		privilegeRepo, err := c.PrivilegeRepository()
		if err != nil {
			c.initErrors["privilegeUseCase"] = err
			return
		}
		c.privilegeUseCase = identityUseCase.NewPrivilegeUseCase(privilegeRepo)
	})
	if err, exists := c.initErrors["privilegeUseCase"]; exists {
		return nil, err
	}
	return c.privilegeUseCase, nil
}
