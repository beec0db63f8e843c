package mocks

import (
	"io"

	"github.com/stretchr/testify/mock"

	"esignapi/internal/pdfinfo"
)

type MockProber struct {
	mock.Mock
}

func (m *MockProber) Probe(rs io.ReadSeeker) (*pdfinfo.Info, error) {
	args := m.Called(rs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pdfinfo.Info), args.Error(1)
}
