package main

import (
	"errors"
	"fmt"

	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/internal/model"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

// createUser gets or creates the user with the given name and prints a fresh
// access token for it. Useful to seed a local environment.
func (s *srv) createUser(cctx *cli.Context) error {
	name := cctx.Args().First()
	if name == "" {
		return errors.New("require a user name")
	}

	s.loadDatabase()
	s.loadTokenEngine()
	s.loadRepos()

	role := entity.RoleChatter
	if cctx.Bool("admin") {
		role = entity.RoleAdmin
	}

	user, err := s.userRepo.GetByName(s.ctx, name)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		user = &entity.User{
			Base: entity.Base{ID: uuid.NewString()},
			Name: name,
			Role: role,
		}
		if err := s.userRepo.Create(s.ctx, user); err != nil {
			return err
		}
	}

	token, err := s.tokenEngine.Generate(user.ID, model.AccessToken{
		ID:   user.ID,
		Role: string(user.Role),
	})
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
