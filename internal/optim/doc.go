// Package optim searches launch parameters for the best run under an
// objective such as range or apex height.
package optim
