package app

import (
	"fmt"

	vaultRepository "github.com/allisson/credvault/internal/vault/repository"
	vaultUseCase "github.com/allisson/credvault/internal/vault/usecase"
)

// PolicyRepository returns the password policy repository instance.
func (c *Container) PolicyRepository() (vaultUseCase.PolicyRepository, error) {
	c.policyRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["policyRepo"] = fmt.Errorf("failed to get database for policy repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.policyRepo = vaultRepository.NewMySQLPolicyRepository(db)
		case "postgres":
			c.policyRepo = vaultRepository.NewPostgreSQLPolicyRepository(db)
		default:
			c.initErrors["policyRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["policyRepo"]; exists {
		return nil, err
	}
	return c.policyRepo, nil
}

// CategoryRepository returns the password category repository instance.
func (c *Container) CategoryRepository() (vaultUseCase.CategoryRepository, error) {
	c.categoryRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["categoryRepo"] = fmt.Errorf("failed to get database for category repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.categoryRepo = vaultRepository.NewMySQLCategoryRepository(db)
		case "postgres":
			c.categoryRepo = vaultRepository.NewPostgreSQLCategoryRepository(db)
		default:
			c.initErrors["categoryRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["categoryRepo"]; exists {
		return nil, err
	}
	return c.categoryRepo, nil
}

// SecretRepository returns the system password repository instance.
func (c *Container) SecretRepository() (vaultUseCase.SecretRepository, error) {
	c.secretRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["secretRepo"] = fmt.Errorf("failed to get database for secret repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.secretRepo = vaultRepository.NewMySQLSecretRepository(db)
		case "postgres":
			c.secretRepo = vaultRepository.NewPostgreSQLSecretRepository(db)
		default:
			c.initErrors["secretRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["secretRepo"]; exists {
		return nil, err
	}
	return c.secretRepo, nil
}

// vaultAssignmentRepository resolves the assignment repository as the slice
// the vault use cases consume.
func (c *Container) vaultAssignmentRepository() (vaultUseCase.AssignmentRepository, error) {
	repo, err := c.AssignmentRepository()
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// PolicyUseCase returns the password policy use case instance.
func (c *Container) PolicyUseCase() (vaultUseCase.PolicyUseCase, error) {
	c.policyUseCaseInit.Do(func() {
		policyRepo, err := c.PolicyRepository()
		if err != nil {
			c.initErrors["policyUseCase"] = err
			return
		}

		categoryRepo, err := c.CategoryRepository()
		if err != nil {
			c.initErrors["policyUseCase"] = err
			return
		}

		useCase := vaultUseCase.NewPolicyUseCase(policyRepo, categoryRepo)

		bm, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["policyUseCase"] = err
			return
		}
		if bm != nil {
			useCase = vaultUseCase.NewPolicyUseCaseWithMetrics(useCase, bm)
		}

		c.policyUseCase = useCase
	})
	if err, exists := c.initErrors["policyUseCase"]; exists {
		return nil, err
	}
	return c.policyUseCase, nil
}

// CategoryUseCase returns the password category use case instance.
func (c *Container) CategoryUseCase() (vaultUseCase.CategoryUseCase, error) {
	c.categoryUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["categoryUseCase"] = err
			return
		}

		categoryRepo, err := c.CategoryRepository()
		if err != nil {
			c.initErrors["categoryUseCase"] = err
			return
		}

		policyRepo, err := c.PolicyRepository()
		if err != nil {
			c.initErrors["categoryUseCase"] = err
			return
		}

		secretRepo, err := c.SecretRepository()
		if err != nil {
			c.initErrors["categoryUseCase"] = err
			return
		}

		assignmentRepo, err := c.vaultAssignmentRepository()
		if err != nil {
			c.initErrors["categoryUseCase"] = err
			return
		}

		useCase := vaultUseCase.NewCategoryUseCase(txManager, categoryRepo, policyRepo, secretRepo, assignmentRepo)

		bm, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["categoryUseCase"] = err
			return
		}
		if bm != nil {
			useCase = vaultUseCase.NewCategoryUseCaseWithMetrics(useCase, bm)
		}

		c.categoryUseCase = useCase
	})
	if err, exists := c.initErrors["categoryUseCase"]; exists {
		return nil, err
	}
	return c.categoryUseCase, nil
}

// SecretUseCase returns the system password use case instance.
func (c *Container) SecretUseCase() (vaultUseCase.SecretUseCase, error) {
	c.secretUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["secretUseCase"] = err
			return
		}

		secretRepo, err := c.SecretRepository()
		if err != nil {
			c.initErrors["secretUseCase"] = err
			return
		}

		categoryRepo, err := c.CategoryRepository()
		if err != nil {
			c.initErrors["secretUseCase"] = err
			return
		}

		policyRepo, err := c.PolicyRepository()
		if err != nil {
			c.initErrors["secretUseCase"] = err
			return
		}

		assignmentRepo, err := c.vaultAssignmentRepository()
		if err != nil {
			c.initErrors["secretUseCase"] = err
			return
		}

		useCase := vaultUseCase.NewSecretUseCase(
			txManager,
			secretRepo,
			categoryRepo,
			policyRepo,
			assignmentRepo,
			c.PasswordService(),
		)

		bm, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["secretUseCase"] = err
			return
		}
		if bm != nil {
			useCase = vaultUseCase.NewSecretUseCaseWithMetrics(useCase, bm)
		}

		c.secretUseCase = useCase
	})
	if err, exists := c.initErrors["secretUseCase"]; exists {
		return nil, err
	}
	return c.secretUseCase, nil
}
