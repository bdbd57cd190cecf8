package memctx_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMemctx(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Memctx Suite")
}
