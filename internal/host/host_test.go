package host

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/imamik/asyncmod/internal/loader"
	"github.com/imamik/asyncmod/internal/manifest"
	"github.com/imamik/asyncmod/internal/source"
)

// countingSource wraps a Source and counts Resolve calls.
type countingSource struct {
	source.Source
	calls atomic.Int32
}

func (c *countingSource) Resolve(ctx context.Context, name string) (*manifest.Manifest, string, error) {
	c.calls.Add(1)
	return c.Source.Resolve(ctx, name)
}

func writeManifest(root, name, version string, exports ...string) {
	GinkgoHelper()
	content := fmt.Sprintf("name: %s\nversion: %s\n", name, version)
	if len(exports) > 0 {
		content += "exports:\n"
		for _, e := range exports {
			content += "  - " + e + "\n"
		}
	}
	Expect(os.WriteFile(filepath.Join(root, name+".yaml"), []byte(content), 0o600)).To(Succeed())
}

var _ = Describe("Host", func() {
	var (
		root string
		src  *countingSource
		h    *Host
		ctx  context.Context
	)

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		src = &countingSource{Source: source.NewDir(root)}
		h = New(src, logr.Discard())
		ctx = context.Background()
	})

	Describe("Execute", func() {
		It("loads a module and registers its exports", func() {
			writeManifest(root, "net-tools", "1.4.0", "Get-Route", "Test-Port")

			Expect(h.Execute(ctx, "net-tools", false)).To(Succeed())

			m, ok := h.Lookup("net-tools")
			Expect(ok).To(BeTrue())
			Expect(m.Version.String()).To(Equal("1.4.0"))
			Expect(m.Generation).To(Equal(1))
			Expect(m.Path).To(Equal(filepath.Join(root, "net-tools.yaml")))

			owner, ok := h.CommandOwner("Test-Port")
			Expect(ok).To(BeTrue())
			Expect(owner).To(Equal("net-tools"))
		})

		It("rejects an empty name without resolving", func() {
			Expect(h.Execute(ctx, "", false)).To(MatchError(ErrEmptyName))
			Expect(src.calls.Load()).To(BeZero())
		})

		It("reports a missing module", func() {
			err := h.Execute(ctx, "ghost", false)
			Expect(err).To(MatchError(source.ErrNotFound))
			Expect(err.Error()).To(ContainSubstring("failed to resolve module ghost"))
			Expect(h.Len()).To(BeZero())
		})

		It("fails modules whose manifest declares an init failure", func() {
			Expect(os.WriteFile(filepath.Join(root, "broken.yaml"),
				[]byte("name: broken\nversion: 1.0.0\nfail: missing dependency libfoo\n"), 0o600)).To(Succeed())

			err := h.Execute(ctx, "broken", false)
			Expect(err).To(MatchError(ErrModuleInit))
			Expect(err.Error()).To(ContainSubstring("missing dependency libfoo"))
			Expect(h.Len()).To(BeZero())
		})

		It("keeps an already loaded module unless forced", func() {
			writeManifest(root, "net-tools", "1.4.0", "Get-Route")
			Expect(h.Execute(ctx, "net-tools", false)).To(Succeed())
			first, _ := h.Lookup("net-tools")

			Expect(h.Execute(ctx, "net-tools", false)).To(Succeed())
			again, _ := h.Lookup("net-tools")
			Expect(again.Generation).To(Equal(1))
			Expect(again.LoadedAt).To(Equal(first.LoadedAt))

			Expect(h.Execute(ctx, "net-tools", true)).To(Succeed())
			forced, _ := h.Lookup("net-tools")
			Expect(forced.Generation).To(Equal(2))
		})

		It("replaces a module when the version changes", func() {
			writeManifest(root, "net-tools", "1.4.0", "Get-Route", "Old-Command")
			Expect(h.Execute(ctx, "net-tools", false)).To(Succeed())

			writeManifest(root, "net-tools", "2.0.0", "Get-Route")
			Expect(h.Execute(ctx, "net-tools", false)).To(Succeed())

			m, _ := h.Lookup("net-tools")
			Expect(m.Version.String()).To(Equal("2.0.0"))
			Expect(m.Generation).To(Equal(2))
			_, ok := h.CommandOwner("Old-Command")
			Expect(ok).To(BeFalse())
		})

		It("lets the last import own a clobbered command", func() {
			writeManifest(root, "a", "1.0.0", "Shared")
			writeManifest(root, "b", "1.0.0", "Shared")

			Expect(h.Execute(ctx, "a", false)).To(Succeed())
			Expect(h.Execute(ctx, "b", false)).To(Succeed())
			owner, _ := h.CommandOwner("Shared")
			Expect(owner).To(Equal("b"))

			By("reloading a, which takes the command back")
			Expect(h.Execute(ctx, "a", true)).To(Succeed())
			owner, _ = h.CommandOwner("Shared")
			Expect(owner).To(Equal("a"))

			By("removing a, which leaves no owner")
			Expect(h.Remove("a")).To(BeTrue())
			_, ok := h.CommandOwner("Shared")
			Expect(ok).To(BeFalse())
			Expect(h.Remove("a")).To(BeFalse())
		})

		It("stamps LoadedAt from the host clock", func() {
			fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
			h.now = func() time.Time { return fixed }
			writeManifest(root, "clock", "1.0.0")

			Expect(h.Execute(ctx, "clock", false)).To(Succeed())
			m, _ := h.Lookup("clock")
			Expect(m.LoadedAt).To(Equal(fixed))
		})
	})

	Describe("snapshots", func() {
		It("returns modules sorted by name and isolated from the table", func() {
			writeManifest(root, "zeta", "1.0.0", "Z")
			writeManifest(root, "alpha", "1.0.0", "A")
			Expect(h.Execute(ctx, "zeta", false)).To(Succeed())
			Expect(h.Execute(ctx, "alpha", false)).To(Succeed())

			mods := h.Modules()
			Expect(mods).To(HaveLen(2))
			Expect(mods[0].Name).To(Equal("alpha"))
			Expect(mods[1].Name).To(Equal("zeta"))

			mods[0].Exports[0] = "mutated"
			m, _ := h.Lookup("alpha")
			Expect(m.Exports).To(Equal([]string{"A"}))
		})
	})

	Describe("as a concurrent executor", func() {
		It("imports many modules at once with one outcome each", func() {
			var names []string
			for i := range 25 {
				name := fmt.Sprintf("mod-%02d", i)
				writeManifest(root, name, "1.0.0", "Cmd-"+name, "Shared")
				names = append(names, name)
			}
			names = append(names, "mod-00", "missing", "")

			var verbose []string
			var failures []loader.Failure
			summary := loader.Import(ctx, names, false, h,
				func(msg string) { verbose = append(verbose, msg) },
				func(f loader.Failure) { failures = append(failures, f) },
			)

			Expect(summary.Total()).To(Equal(len(names)))
			Expect(verbose).To(HaveLen(26))
			Expect(failures).To(HaveLen(2))
			Expect(h.Len()).To(Equal(25))

			owner, ok := h.CommandOwner("Shared")
			Expect(ok).To(BeTrue())
			Expect(owner).To(HavePrefix("mod-"))

			var failed []string
			for _, f := range failures {
				failed = append(failed, f.Name)
				Expect(f.Category).To(Equal(loader.CategoryOperationStopped))
			}
			Expect(failed).To(ConsistOf("missing", ""))
		})
	})
})
