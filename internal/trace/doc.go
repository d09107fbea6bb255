// Package trace carries the structured logger through a context.Context.
//
// The logger is a *logrus.Logger writing to stderr. Packages that do work
// on behalf of a command pull it with FromContext and log at debug level;
// the CLI decides the level once with --log-level.
package trace
