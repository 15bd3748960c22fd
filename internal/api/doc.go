// Package api contains the HTTP handlers, request/response models and
// error mapping for the service's REST surface, including the machine
// endpoints invoked by the external cron scheduler.
package api
