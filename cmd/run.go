package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/resumatch/resumatch/internal/flow"
	"github.com/resumatch/resumatch/internal/logger"
	"github.com/resumatch/resumatch/internal/matcher"
	"github.com/resumatch/resumatch/internal/secrets"
	"github.com/resumatch/resumatch/internal/ui"
)

const (
	PromptHome     = "Home"
	PromptAdmin    = "Admin Dashboard"
	PromptRefresh  = "Refresh"
	PromptFeedback = "Leave recruiter feedback"
	PromptBack     = "Back"
	PromptExit     = "Exit"
)

var viewPrompt = promptui.Select{
	Label: "Choose a view",
	Items: []string{PromptHome, PromptAdmin, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive resumatch session",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("resume", "r", "", "path to a resume file to preload into the home view")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resumatch", zap.String("version", version))

	client := matcher.New(ctx, logger, config.serverURL())
	if ua := config.userAgent(); ua != "" {
		client.UserAgent = ua
	}

	creds, err := credentialProvider(config, logger)
	if err != nil {
		logger.Fatal("preparing the credential store", zap.Error(err))
	}

	matchFlow := flow.NewMatchFlow(client, logger)
	defer matchFlow.Close()

	if preload := cmd.Flag("resume").Value.String(); preload != "" {
		file, err := readResumeFile(preload)
		if err != nil {
			logger.Fatal("reading the resume file", zap.Error(err))
		}
		matchFlow.SetFile(file)
	}

	for {
		_, view, err := viewPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		switch view {
		case PromptHome:
			err = homeView(matchFlow, logger)
		case PromptAdmin:
			err = adminView(client, creds, config.requireAuth(), logger)
		case PromptExit:
			logger.Info("exiting", zap.String("reason", "got exit from prompt"))
			return
		}

		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// homeView collects the submission input and renders the flow's terminal
// state. The flow decides whether a network call happens at all.
func homeView(f *flow.MatchFlow, log *zap.Logger) error {
	log = logger.WithViewFields(log, "home", "")

	pathPrompt := promptui.Prompt{Label: "Resume file (pdf or docx)", AllowEdit: true}
	path, err := pathPrompt.Run()
	if err != nil {
		return err
	}

	if strings.TrimSpace(path) != "" {
		file, err := readResumeFile(path)
		if err != nil {
			// An unreadable file is an input problem, not a flow failure.
			fmt.Println("could not read the resume file:", err)
			return nil
		}
		f.SetFile(file)
	}

	descPrompt := promptui.Prompt{Label: "Job description"}
	desc, err := descPrompt.Run()
	if err != nil {
		return err
	}
	if desc != "" {
		f.SetJobDescription(desc)
	}

	log.Debug("submitting the resume", zap.String("job_description", logger.TruncateForLog(desc, 80)))

	<-f.Submit()

	state, result, message := f.State()
	switch state {
	case flow.StateSucceeded:
		fmt.Println(ui.MatchResultLine(result))
	case flow.StateFailed:
		fmt.Println(message)
	}

	return nil
}

// adminView fetches the dashboard and renders whichever state the flow ends
// in. Refresh re-enters loading with a fresh call; no sub-view fetches on its
// own.
func adminView(client *matcher.Client, creds flow.CredentialProvider, requireAuth bool, log *zap.Logger) error {
	f := flow.NewDashboardFlow(client, creds, requireAuth, log)
	defer f.Close()

	for {
		<-f.Fetch()

		state, snapshot, message := f.State()
		switch state {
		case flow.StateReady:
			renderDashboard(snapshot)
		case flow.StateUnauthorized:
			fmt.Println("Unauthorized: please log in first (resumatch login).")
		case flow.StateFailed:
			fmt.Println(message)
		}

		items := []string{PromptRefresh, PromptBack}
		if state == flow.StateReady {
			items = []string{PromptRefresh, PromptFeedback, PromptBack}
		}

		actionPrompt := promptui.Select{Label: "Dashboard", Items: items}
		_, action, err := actionPrompt.Run()
		if err != nil {
			return err
		}

		switch action {
		case PromptBack:
			return nil
		case PromptFeedback:
			if err := feedbackPrompt(client, snapshot); err != nil {
				return err
			}
		}
	}
}

func renderDashboard(s *matcher.DashboardSnapshot) {
	fmt.Println("Admin Dashboard")
	for _, line := range ui.StatsLines(s) {
		fmt.Println(line)
	}

	fmt.Println()
	fmt.Println("Top skills:")
	for _, line := range ui.SkillsChart(s.TopSkills) {
		fmt.Println(line)
	}

	fmt.Println()
	fmt.Println(ui.FeedbackLine(s.FeedbackCount))

	fmt.Println()
	fmt.Println("Processed resumes:")
	for _, line := range ui.ResumeLines(s.ProcessedResumes) {
		fmt.Println(line)
	}
}

// feedbackPrompt records a recruiter rating for one of the processed resumes.
func feedbackPrompt(client *matcher.Client, snapshot *matcher.DashboardSnapshot) error {
	if snapshot == nil || len(snapshot.ProcessedResumes) == 0 {
		fmt.Println("No resumes to rate yet.")
		return nil
	}

	items := make([]string, 0, len(snapshot.ProcessedResumes))
	for _, r := range snapshot.ProcessedResumes {
		items = append(items, r.Filename)
	}

	filePrompt := promptui.Select{Label: "Choose a resume", Items: append(items, PromptBack)}
	_, filename, err := filePrompt.Run()
	if err != nil {
		return err
	}
	if filename == PromptBack {
		return nil
	}

	ratingPrompt := promptui.Prompt{
		Label: "Rating (0-5)",
		Validate: func(input string) error {
			v, err := strconv.ParseFloat(input, 64)
			if err != nil || v < 0 || v > 5 {
				return fmt.Errorf("rating must be a number between 0 and 5")
			}
			return nil
		},
	}
	raw, err := ratingPrompt.Run()
	if err != nil {
		return err
	}
	rating, _ := strconv.ParseFloat(raw, 64)

	commentPrompt := promptui.Prompt{Label: "Comments (optional)"}
	comments, err := commentPrompt.Run()
	if err != nil {
		return err
	}

	if err := client.SubmitFeedback(filename, rating, comments); err != nil {
		fmt.Println("Could not record feedback:", err)
		return nil
	}

	fmt.Println("Feedback recorded.")
	return nil
}

// credentialProvider picks where the dashboard credential comes from: an
// explicit token file wins over the persistent store.
func credentialProvider(config *Config, log *zap.Logger) (flow.CredentialProvider, error) {
	tokenFile := strings.TrimSpace(config.TokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("token-file"))
	}

	if tokenFile != "" {
		log.Debug("using token file for the dashboard credential", zap.String("file", tokenFile))
		return &tokenFileProvider{file: tokenFile}, nil
	}

	return newCredentialStore(config)
}

// tokenFileProvider reads the bearer credential from a file on every access,
// bypassing the persistent store.
type tokenFileProvider struct {
	file string
}

func (p *tokenFileProvider) Credential() (string, bool) {
	token, err := secrets.Load(secrets.Source{
		Name: "bearer token",
		File: p.file,
	})
	if err != nil {
		return "", false
	}

	return token, true
}

// readResumeFile loads the file and derives the content type the service
// expects from the extension.
func readResumeFile(path string) (*matcher.FileAttachment, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &matcher.FileAttachment{
		Filename:    filepath.Base(path),
		ContentType: contentTypeFor(path),
		Content:     content,
	}, nil
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
