package mocks

import (
	"regexp"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

var mockCodePattern = regexp.MustCompile(`^\d{6}$`)

// MockCodeService implements domain.CodeService for testing
type MockCodeService struct {
	GenerateFunc func() (string, error)
	HashFunc     func(code string) string
	VerifyFunc   func(code, digest string) bool
}

// NewMockCodeService creates a new MockCodeService with default behaviors
func NewMockCodeService() *MockCodeService {
	return &MockCodeService{}
}

// Generate returns a fixed code unless overridden
func (m *MockCodeService) Generate() (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return "123456", nil
}

// Hash prefixes the code unless overridden
func (m *MockCodeService) Hash(code string) string {
	if m.HashFunc != nil {
		return m.HashFunc(code)
	}
	return "hash:" + code
}

// Verify accepts the default hash scheme unless overridden
func (m *MockCodeService) Verify(code, digest string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(code, digest)
	}
	if digest == "" || !mockCodePattern.MatchString(code) {
		return false
	}
	return digest == "hash:"+code
}

// Compile-time interface compliance verification
var _ domain.CodeService = (*MockCodeService)(nil)
