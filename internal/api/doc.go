// Package api contains the HTTP handlers, request/response models and
// error mapping for the learning service's REST surface. Handlers stay
// thin: decode and validate the payload, call one service method, translate
// the result. All domain decisions live in the services underneath.
package api
