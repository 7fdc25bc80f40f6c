// Package auth handles sign-in, registration, Google sign-in, and sign-out.
package auth
