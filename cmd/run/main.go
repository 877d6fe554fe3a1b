// Command run tabulates observables of the four Bell states: the one-qubit
// reduced density operators, their purity and entanglement entropy.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/pkg/errors"

	"quijy"
	"quijy/mat"
)

var (
	chopTol = flag.Float64("tol", 1e-12, "chop tolerance applied to reduced operators")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	if err := mainWithErr(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func mainWithErr() error {
	fmt.Printf("state,qubit,trace,purity,entropy\n")
	for _, label := range []string{"phi+", "phi-", "psi+", "psi-"} {
		psi, err := quijy.BellState(label)
		if err != nil {
			return errors.Wrap(err, "")
		}

		for _, qubit := range []int{0, 1} {
			rho, err := quijy.Ptr(psi, []int{2, 2}, []int{qubit})
			if err != nil {
				return errors.Wrap(err, label)
			}
			mat.ChopInPlace(rho, *chopTol)

			purity, err := quijy.Purity(rho)
			if err != nil {
				return errors.Wrap(err, label)
			}
			entropy, err := quijy.Entropy(rho)
			if err != nil {
				return errors.Wrap(err, label)
			}
			fmt.Printf("%s,%d,%f,%f,%f\n", label, qubit, real(quijy.Tr(rho)), purity, entropy)
		}
	}
	return nil
}
