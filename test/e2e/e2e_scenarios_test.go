package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"
)

var pathToCLI string

var _ = BeforeSuite(func() {
	var err error
	// Build the CLI binary for testing
	pathToCLI, err = gexec.Build("github.com/hzerrad/reminderd/cmd/reminderd")
	Expect(err).NotTo(HaveOccurred())
})

var _ = AfterSuite(func() {
	// Clean up the built binary
	gexec.CleanupBuildArtifacts()
})

const sampleCatalogue = `[general]
text_font = "Sans Serif"

[water_break]
schedule = "* * * * *"
icon = "water.png"

[stretch_break]
schedule = "0 * * * *"
icon = "stretch.png"
`

var _ = Describe("E2E Scenarios", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		// Create a temporary directory for each test
		tempDir, err = os.MkdirTemp("", "reminderd-e2e-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		// Clean up the temporary directory
		if tempDir != "" {
			_ = os.RemoveAll(tempDir)
		}
	})

	Describe("Complete User Workflow", func() {
		Context("when a new user runs the CLI for the first time", func() {
			It("should display help when no command is provided", func() {
				command := exec.Command(pathToCLI)
				session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
				Expect(err).NotTo(HaveOccurred())

				Eventually(session).Should(gexec.Exit(0))
				Expect(session.Out).To(gbytes.Say("Usage:"))
				Expect(session.Out).To(gbytes.Say("Available Commands:"))
			})

			It("should be able to check version", func() {
				command := exec.Command(pathToCLI, "version")
				session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
				Expect(err).NotTo(HaveOccurred())

				Eventually(session).Should(gexec.Exit(0))
				Expect(session.Out).To(gbytes.Say("reminderd"))
			})

			It("should write an example config and exit non-zero when none exists", func() {
				command := exec.Command(pathToCLI, "run", "--config", tempDir)
				session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
				Expect(err).NotTo(HaveOccurred())

				Eventually(session).Should(gexec.Exit(1))
				Expect(session.Err).To(gbytes.Say("configuration missing"))

				_, statErr := os.Stat(filepath.Join(tempDir, "config.toml"))
				Expect(statErr).NotTo(HaveOccurred())
			})
		})

		Context("when a reminder catalogue is already configured", func() {
			BeforeEach(func() {
				err := os.WriteFile(filepath.Join(tempDir, "config.toml"), []byte(sampleCatalogue), 0644)
				Expect(err).NotTo(HaveOccurred())
			})

			It("should list every reminder in load order", func() {
				command := exec.Command(pathToCLI, "list", "--config", tempDir)
				session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
				Expect(err).NotTo(HaveOccurred())

				Eventually(session).Should(gexec.Exit(0))
				Expect(session.Out).To(gbytes.Say("water_break"))
				Expect(session.Out).To(gbytes.Say("stretch_break"))
			})

			It("should show the next fires for a named reminder", func() {
				command := exec.Command(pathToCLI, "next", "stretch_break", "--config", tempDir, "-c", "3")
				session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
				Expect(err).NotTo(HaveOccurred())

				Eventually(session).Should(gexec.Exit(0))
				Expect(session.Out).To(gbytes.Say("Next 3 fires"))
				Expect(session.Out).To(gbytes.Say("stretch_break"))
			})

			It("should fail next for an unknown reminder name", func() {
				command := exec.Command(pathToCLI, "next", "does-not-exist", "--config", tempDir)
				session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
				Expect(err).NotTo(HaveOccurred())

				Eventually(session).Should(gexec.Exit(1))
				Expect(session.Err).To(gbytes.Say("does-not-exist"))
			})

			It("should validate the catalogue with check", func() {
				command := exec.Command(pathToCLI, "check", "--config", tempDir)
				session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
				Expect(err).NotTo(HaveOccurred())

				Eventually(session).Should(gexec.Exit(0))
			})

			It("should run the daemon, present a due reminder, accept a command, and shut down on SIGINT", func() {
				command := exec.Command(pathToCLI, "run", "--config", tempDir)
				stdin, err := command.StdinPipe()
				Expect(err).NotTo(HaveOccurred())

				session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
				Expect(err).NotTo(HaveOccurred())

				// water_break fires every minute; allow up to 65s for a tick.
				Eventually(session.Out, 65*time.Second).Should(gbytes.Say("Reminder: water_break"))

				_, err = stdin.Write([]byte("complete water_break\n"))
				Expect(err).NotTo(HaveOccurred())

				Expect(command.Process.Signal(syscall.SIGINT)).To(Succeed())
				Eventually(session, 5*time.Second).Should(gexec.Exit(0))
			})
		})
	})

	Describe("Cron-domain tooling kept from the original crontab workflow", func() {
		Context("when a user plans and validates cron schedules directly", func() {
			It("should support explain + direct-expression check without a catalogue", func() {
				By("understanding what a cron expression means")
				command := exec.Command(pathToCLI, "explain", "0 9 * * 1-5")
				session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
				Expect(err).NotTo(HaveOccurred())
				Eventually(session).Should(gexec.Exit(0))
				Expect(session.Out).To(gbytes.Say("09:00"))

				By("validating the expression is correct")
				command = exec.Command(pathToCLI, "check", "0 9 * * 1-5")
				session, err = gexec.Start(command, GinkgoWriter, GinkgoWriter)
				Expect(err).NotTo(HaveOccurred())
				Eventually(session).Should(gexec.Exit(0))
				Expect(session.Out).To(gbytes.Say("All valid"))
			})

			It("should validate a crontab file before treating it as a reminder source", func() {
				testFile := filepath.Join("..", "..", "testdata", "crontab", "sample.cron")
				command := exec.Command(pathToCLI, "check", "--file", testFile)
				session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
				Expect(err).NotTo(HaveOccurred())
				Eventually(session).Should(gexec.Exit(0))
			})

			It("should identify DOM/DOW conflicts in schedules", func() {
				command := exec.Command(pathToCLI, "check", "0 0 1 * 1", "--verbose")
				session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
				Expect(err).NotTo(HaveOccurred())
				Eventually(session).Should(gexec.Exit(2))
				Expect(session.Out).To(gbytes.Say("warning"))
			})
		})
	})

	Describe("Error Handling", func() {
		Context("when invalid commands are used", func() {
			It("should provide helpful error messages", func() {
				command := exec.Command(pathToCLI, "nonexistent")
				session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
				Expect(err).NotTo(HaveOccurred())

				Eventually(session).Should(gexec.Exit(1))
				Expect(session.Err).To(gbytes.Say("unknown command"))
			})
		})

		Context("when invalid flags are used", func() {
			It("should provide helpful error messages", func() {
				command := exec.Command(pathToCLI, "explain", "--invalid-flag")
				session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
				Expect(err).NotTo(HaveOccurred())

				Eventually(session).Should(gexec.Exit(1))
				Expect(session.Err).To(gbytes.Say("unknown flag"))
			})
		})
	})

	Describe("Performance and Reliability", func() {
		Context("when executing commands rapidly", func() {
			It("should handle rapid successive calls", func() {
				for i := 0; i < 5; i++ {
					command := exec.Command(pathToCLI, "version")
					session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
					Expect(err).NotTo(HaveOccurred())
					Eventually(session).Should(gexec.Exit(0))
				}
			})
		})
	})
})
