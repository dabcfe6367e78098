// Package fileutil holds small filesystem helpers shared by exporters.
package fileutil
