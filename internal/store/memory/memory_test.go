package memory

import (
	"testing"

	"github.com/dropDatabas3/studyhub/internal/store/storetest"
)

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storetest.Backend { return New() })
}
