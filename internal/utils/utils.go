package utils

import (
	"context"
	"io"
	"reflect"

	"github.com/stellar/go-stellar-sdk/support/log"
)

// IsEmpty reports whether v holds the zero value of its type.
func IsEmpty[T any](v T) bool {
	return reflect.ValueOf(&v).Elem().IsZero()
}

// UnwrapInterfaceToPointer returns i as a *T, or nil when i holds something else.
func UnwrapInterfaceToPointer[T any](i interface{}) *T {
	t, ok := i.(*T)
	if ok {
		return t
	}
	return nil
}

// DeferredClose closes the resource and logs the failure, meant to be used with defer.
func DeferredClose(ctx context.Context, closer io.Closer, errMsg string) {
	if err := closer.Close(); err != nil {
		if errMsg == "" {
			errMsg = "closing resource"
		}
		log.Ctx(ctx).Errorf("%s: %v", errMsg, err)
	}
}
