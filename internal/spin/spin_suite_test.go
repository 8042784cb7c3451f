package spin

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSpinSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Spin Network Suite")
}
