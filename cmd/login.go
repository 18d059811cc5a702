package cmd

import (
	"context"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/resumatch/resumatch/internal/credstore"
	"github.com/resumatch/resumatch/internal/logger"
	"github.com/resumatch/resumatch/internal/matcher"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the scoring service and store the credential",
	Run: func(_ *cobra.Command, _ []string) {
		login()
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored credential",
	Run: func(_ *cobra.Command, _ []string) {
		logout()
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func login() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	userPrompt := promptui.Prompt{Label: "Username"}
	username, err := userPrompt.Run()
	if err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}

	passPrompt := promptui.Prompt{Label: "Password", Mask: '*'}
	password, err := passPrompt.Run()
	if err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}

	client := matcher.New(ctx, logger, config.serverURL())
	if ua := config.userAgent(); ua != "" {
		client.UserAgent = ua
	}

	token, err := client.Login(username, password)
	if err != nil {
		logger.Fatal("login failed", zap.Error(err))
	}

	store, err := newCredentialStore(config)
	if err != nil {
		logger.Fatal("preparing the credential store", zap.Error(err))
	}

	if err := store.Set(credstore.CredentialKey, token); err != nil {
		logger.Fatal("storing the credential", zap.Error(err))
	}

	logger.Info("logged in", zap.String("username", username))
}

func logout() {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	store, err := newCredentialStore(config)
	if err != nil {
		logger.Fatal("preparing the credential store", zap.Error(err))
	}

	if err := store.Delete(credstore.CredentialKey); err != nil {
		logger.Fatal("clearing the credential", zap.Error(err))
	}

	logger.Info("logged out")
}
