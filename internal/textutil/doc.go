// Package textutil derives filesystem-safe names for exported artifacts.
package textutil
