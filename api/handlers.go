package api

import (
	"context"
	"time"

	"github.com/rpupo63/studio-site-backend/config"
	"github.com/rpupo63/studio-site-backend/database"
	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/services"
	"github.com/rs/zerolog/log"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(ctx context.Context, db database.Database, c map[string]string, tokens *tokenIssuer, startupTime time.Time) (*routeHandlers, error) {
	store, err := newImageStore(ctx, c)
	if err != nil {
		return nil, err
	}

	notifier, err := newInquiryNotifier(c)
	if err != nil {
		return nil, err
	}

	var opts []services.InquiryServiceOption
	if notifier != nil {
		opts = append(opts, services.WithNotifier(notifier))
	}
	inquiries := services.NewInquiryService(db.InquiryRepo(), db.InquiryActivityRepo(), opts...)

	return &routeHandlers{
		teamHandler:     newTeamHandler(db.TeamMemberRepo()),
		projectHandler:  newProjectHandler(db.ProjectRepo(), services.NewContentSanitizer()),
		slideHandler:    newSlideHandler(db.BannerSlideRepo()),
		categoryHandler: newCategoryHandler(db.CategoryRepo()),
		inquiryHandler:  newInquiryHandler(inquiries),
		settingsHandler: newSettingsHandler(db.SiteSettingsRepo()),
		uploadHandler:   newUploadHandler(services.NewUploadService(store)),
		authHandler:     newAuthHandler(config.GetString(c, "ADMIN_PASSWORD", ""), tokens),
		healthHandler:   newHealthHandler(db, startupTime),
	}, nil
}

// newImageStore keeps uploads in S3 when S3_BUCKET is set, on local disk otherwise
func newImageStore(ctx context.Context, c map[string]string) (services.ImageStore, error) {
	if config.GetString(c, "S3_BUCKET", "") != "" {
		store, err := services.NewS3ImageStore(ctx, c)
		if err != nil {
			return nil, err
		}
		log.Info().Str("bucket", config.GetString(c, "S3_BUCKET", "")).Msg("storing uploads in S3")
		return store, nil
	}
	return services.NewLocalImageStore(uploadDir(c), uploadsPath), nil
}

func uploadDir(c map[string]string) string {
	return config.GetString(c, "UPLOAD_DIR", "uploads")
}

// newInquiryNotifier builds a notifier for every channel that is fully
// configured. It returns nil when none is.
func newInquiryNotifier(c map[string]string) (services.InquiryNotifier, error) {
	var notifiers []services.InquiryNotifier

	email, err := services.NewEmailNotifier(c)
	switch {
	case err == nil:
		notifiers = append(notifiers, email)
	case errs.IsConfigMissingError(err):
		log.Info().Str("reason", err.Error()).Msg("email notifications disabled")
	default:
		return nil, err
	}

	sms, err := services.NewSMSNotifier(c)
	switch {
	case err == nil:
		notifiers = append(notifiers, sms)
	case errs.IsConfigMissingError(err):
		log.Info().Str("reason", err.Error()).Msg("sms notifications disabled")
	default:
		return nil, err
	}

	if len(notifiers) == 0 {
		return nil, nil
	}
	channels := config.GetStrings(c, "NOTIFY_CHANNELS", []string{"email", "sms"})
	return services.NewNotifyEverywhere(channels, notifiers...), nil
}
