package integration_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"
)

const nextCommandCatalogue = `[general]
text_font = "Sans Serif"

[water_break]
schedule = "*/15 * * * *"
icon = "water.png"

[daily_standup]
schedule = "@daily"
icon = "standup.png"
`

var _ = Describe("Next Command", func() {
	var configDir string

	BeforeEach(func() {
		var err error
		configDir, err = os.MkdirTemp("", "reminderd-next-*")
		Expect(err).NotTo(HaveOccurred())
		err = os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(nextCommandCatalogue), 0644)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(configDir)
	})

	Describe("Basic Usage", func() {
		It("should show next 10 fires by default", func() {
			command := exec.Command(pathToCLI, "next", "water_break", "--config", configDir)
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
			Expect(session.Out).To(gbytes.Say("Next 10 fires"))
			Expect(session.Out).To(gbytes.Say("water_break"))
			Expect(session.Out).To(gbytes.Say("1\\."))
			Expect(session.Out).To(gbytes.Say("10\\."))
		})

		It("should respect custom count with long flag", func() {
			command := exec.Command(pathToCLI, "next", "daily_standup", "--config", configDir, "--count", "5")
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
			Expect(session.Out).To(gbytes.Say("Next 5 fires"))
		})

		It("should respect custom count with short flag", func() {
			command := exec.Command(pathToCLI, "next", "daily_standup", "--config", configDir, "-c", "3")
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
			Expect(session.Out).To(gbytes.Say("Next 3 fires"))
		})

		It("should handle a count of 1 with the singular wording", func() {
			command := exec.Command(pathToCLI, "next", "daily_standup", "--config", configDir, "--count", "1")
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
			Expect(session.Out).To(gbytes.Say("Next 1 fire"))
		})

		It("should handle the maximum count of 100", func() {
			command := exec.Command(pathToCLI, "next", "water_break", "--config", configDir, "-c", "100")
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
			Expect(session.Out).To(gbytes.Say("Next 100 fires"))
		})
	})

	Describe("JSON Output", func() {
		It("should produce well-formed JSON with --json", func() {
			command := exec.Command(pathToCLI, "next", "daily_standup", "--config", configDir, "--json", "-c", "3")
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())
			Eventually(session).Should(gexec.Exit(0))

			var result struct {
				Name       string `json:"name"`
				Expression string `json:"expression"`
				NextRuns   []struct {
					Number    int    `json:"number"`
					Timestamp string `json:"timestamp"`
				} `json:"next_runs"`
			}
			Expect(json.Unmarshal(session.Out.Contents(), &result)).To(Succeed())
			Expect(result.Name).To(Equal("daily_standup"))
			Expect(result.Expression).To(Equal("@daily"))
			Expect(result.NextRuns).To(HaveLen(3))
		})
	})

	Describe("Error Handling", func() {
		It("should fail for a reminder name not in the catalogue", func() {
			command := exec.Command(pathToCLI, "next", "does-not-exist", "--config", configDir)
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(1))
			Expect(session.Err).To(gbytes.Say("does-not-exist"))
		})

		It("should fail when the configuration directory has no catalogue", func() {
			emptyDir, err := os.MkdirTemp("", "reminderd-next-empty-*")
			Expect(err).NotTo(HaveOccurred())
			defer os.RemoveAll(emptyDir)

			command := exec.Command(pathToCLI, "next", "water_break", "--config", emptyDir)
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(1))
		})

		It("should fail on an out-of-range count (too low)", func() {
			command := exec.Command(pathToCLI, "next", "water_break", "--config", configDir, "--count", "0")
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(1))
			Expect(session.Err).To(gbytes.Say("count must be at least"))
		})

		It("should fail on an out-of-range count (too high)", func() {
			command := exec.Command(pathToCLI, "next", "water_break", "--config", configDir, "--count", "101")
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(1))
			Expect(session.Err).To(gbytes.Say("count must be at most"))
		})

		It("should fail when no reminder name is given", func() {
			command := exec.Command(pathToCLI, "next", "--config", configDir)
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(1))
		})
	})

	Describe("Help", func() {
		It("should show help text", func() {
			command := exec.Command(pathToCLI, "next", "--help")
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
			Expect(session.Out).To(gbytes.Say("next"))
		})
	})
})
