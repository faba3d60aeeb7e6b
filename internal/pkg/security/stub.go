package security

import (
	"errors"
	"net/http"

	"github.com/ferdiebergado/verikit/internal/pkg/web"
)

type StubBaker struct {
	BakeFunc  func() (*http.Cookie, error)
	CheckFunc func(cookie *http.Cookie) error
}

var _ web.Baker = (*StubBaker)(nil)

func (b *StubBaker) Bake() (*http.Cookie, error) {
	if b.BakeFunc == nil {
		return nil, errors.New("Bake not implemented by stub")
	}
	return b.BakeFunc()
}

func (b *StubBaker) Check(cookie *http.Cookie) error {
	if b.CheckFunc == nil {
		return errors.New("Check not implemented by stub")
	}
	return b.CheckFunc(cookie)
}
