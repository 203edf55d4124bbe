// Trace program that runs the sieves one at a time over a document and
// prints the chains after every pass
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/corefsieve/internal/attr"
	"github.com/ppiankov/corefsieve/internal/dict"
	"github.com/ppiankov/corefsieve/internal/model"
	"github.com/ppiankov/corefsieve/internal/partition"
	"github.com/ppiankov/corefsieve/internal/score"
	"github.com/ppiankov/corefsieve/internal/sieve"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: sieve-trace <document.json>")
		os.Exit(2)
	}

	if err := trace(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func trace(path string) error {
	doc, err := model.LoadDocument(path)
	if err != nil {
		return err
	}
	d, err := dict.Default()
	if err != nil {
		return err
	}

	attr.NewResolver(d, nil).ResolveDocument(doc)

	fmt.Printf("=== %s: %d sentences, %d mentions ===\n\n", doc.ID, len(doc.Sentences), doc.MentionCount())
	for _, s := range doc.Sentences {
		for _, m := range s.Mentions {
			a := m.Attributes
			fmt.Printf("  [%d] s%d %-30q %-10s gender=%s number=%s animacy=%s person=%s\n",
				m.ID, m.Sentence, m.SurfaceText(), m.Category, a.Gender, a.Number, a.Animacy, a.Person)
		}
	}
	fmt.Println()

	mgr, err := partition.NewManager(doc, d)
	if err != nil {
		return err
	}

	driver := sieve.NewDriver(nil)
	seen := 0
	for _, s := range sieve.All(sieve.RuleStrict) {
		res := driver.Run(mgr, s)
		fmt.Printf("%s (window %d)\n", res.Stat.Sieve, res.Stat.Window)
		fmt.Println(strings.Repeat("-", 60))

		merges := mgr.Merges()
		for _, m := range merges[seen:] {
			fmt.Printf("  merge %d -> %d (distance %d, chain %d)\n", m.Mention, m.Antecedent, m.Distance, m.Chain)
		}
		seen = len(merges)
		for _, f := range res.Failures {
			fmt.Printf("  ✗ mention %d: %s\n", f.Mention, f.Error)
		}
		if res.Stat.Merges == 0 && len(res.Failures) == 0 {
			fmt.Println("  no merges")
		}
		fmt.Println()
	}

	fmt.Println("Final chains")
	fmt.Println(strings.Repeat("-", 60))
	chains := mgr.Chains()
	for _, c := range chains {
		fmt.Printf("  %d: %s\n", c.ID, strings.Join(c.Texts, " | "))
	}

	if len(doc.GoldChains) > 0 {
		sc := score.NewScorer().Calculate(chains, doc.GoldChains)
		fmt.Println()
		fmt.Printf("MUC  P=%.3f R=%.3f F1=%.3f\n", sc.MUC.Precision, sc.MUC.Recall, sc.MUC.F1)
		fmt.Printf("B3   P=%.3f R=%.3f F1=%.3f\n", sc.BCubed.Precision, sc.BCubed.Recall, sc.BCubed.F1)
		for _, sig := range sc.Signals {
			fmt.Printf("  [%s] %s\n", sig.Severity, sig.Description)
		}
	}
	return nil
}
