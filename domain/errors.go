package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrInvalidInput is returned for semantically invalid requests, e.g. following yourself
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized is returned when a mutation is attempted by someone who does not own the resource
	ErrUnauthorized = errors.New("you are not allowed to modify this resource")
	// ErrCacheMiss 缓存中没有对应的数据
	ErrCacheMiss = errors.New("cache miss")
)
