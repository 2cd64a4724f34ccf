//go:build tools

package tools

// The mocks under pkg/compressed/mocks are generated by the mockery v3
// binary with the testify template; it is installed, not imported.
// Regenerate with: mockery --config .mockery.yml
