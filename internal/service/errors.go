package service

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
