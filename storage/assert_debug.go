//go:build pooldebug

package storage

const debugAssertions = true
