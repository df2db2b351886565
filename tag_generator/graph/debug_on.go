//go:build tagdebug

package graph

const debugAssertions = true
