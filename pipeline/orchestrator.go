// Package pipeline sequences the five synchronization stages: webinar
// snapshot, lead ingestion, lead upload, registrant download and attendee
// download. Stages run strictly one after another; a stage error skips the
// remaining work of that stage and every later stage, while ledger state
// already committed stays committed, so the next run resumes naturally.
package pipeline

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-webinar-sync/attendees"
	"github.com/jrsteele09/go-webinar-sync/internal/config"
	apperrors "github.com/jrsteele09/go-webinar-sync/internal/errors"
	"github.com/jrsteele09/go-webinar-sync/leads"
	"github.com/jrsteele09/go-webinar-sync/ledger"
	"github.com/jrsteele09/go-webinar-sync/registrants"
	"github.com/jrsteele09/go-webinar-sync/token"
	"github.com/jrsteele09/go-webinar-sync/webinars"
)

const (
	// Month offsets of the fixed-window stages.
	snapshotMonthsBack    = -120
	snapshotMonthsForward = 3
	uploadMonthsBack      = -3
	uploadMonthsForward   = 3

	// Page sizes per call site. The lead-upload webinar fetch and the live
	// registrant existence check use the smaller sizes of the original
	// deployment; the bulk stages use the API maximum.
	listPageSize           = 200
	uploadWebinarPageSize  = 20
	liveRegistrantPageSize = 100
)

// Services bundles the remote API dependencies of the pipeline.
type Services struct {
	Tokens      *token.Manager
	Webinars    *webinars.Service
	Registrants *registrants.Service
	Attendees   *attendees.Service
}

// Storage bundles the local persistence dependencies of the pipeline.
type Storage struct {
	Snapshot         *webinars.SnapshotWriter
	RegistrantFiles  *registrants.FileWriter
	AttendeeFiles    *attendees.FileWriter
	Inbox            *leads.Inbox
	UploadLedger     *ledger.Ledger
	RegistrantLedger *ledger.Ledger
	AttendeeLedger   *ledger.Ledger
}

// Pipeline is the orchestrator for one synchronization run.
type Pipeline struct {
	services     Services
	storage      Storage
	dummyPhone   string
	monthsBack   int
	monthsFwd    int
	ledgerPolicy config.LedgerPolicy
	nowTime      func() time.Time
}

// Option modifies a Pipeline.
type Option func(*Pipeline)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(p *Pipeline) {
		p.nowTime = nowFunc
	}
}

// New creates a Pipeline. The download-stage month offsets and ledger
// policy come from the sync configuration.
func New(services Services, storage Storage, dummyPhone string, sync config.SyncConfig, options ...Option) (*Pipeline, error) {
	if services.Tokens == nil || services.Webinars == nil || services.Registrants == nil || services.Attendees == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidArgument, "pipeline.New: all services are required")
	}
	if storage.Snapshot == nil || storage.RegistrantFiles == nil || storage.AttendeeFiles == nil || storage.Inbox == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidArgument, "pipeline.New: all storage writers are required")
	}
	if storage.UploadLedger == nil || storage.RegistrantLedger == nil || storage.AttendeeLedger == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidArgument, "pipeline.New: all ledgers are required")
	}

	p := &Pipeline{
		services:     services,
		storage:      storage,
		dummyPhone:   dummyPhone,
		monthsBack:   sync.FromDateBackward,
		monthsFwd:    sync.ToDateForward,
		ledgerPolicy: sync.LedgerPolicy,
		nowTime:      time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	return p, nil
}

// Run executes one full synchronization pass. The access token is obtained
// exactly once and handed to every stage; it never outlives the run.
func (p *Pipeline) Run(ctx context.Context) error {
	logger := log.With().Str("run_id", uuid.NewString()).Logger()
	logger.Debug().Msg("starting synchronization run")

	accessToken, err := p.services.Tokens.Refresh(ctx)
	if err != nil {
		return apperrors.Wrapf(err, "pipeline: token refresh")
	}

	if err := p.runWebinarSnapshot(ctx, logger, accessToken); err != nil {
		return apperrors.Wrapf(err, "pipeline: webinar snapshot stage")
	}

	pending, err := p.runLeadIngestion(logger)
	if err != nil {
		return apperrors.Wrapf(err, "pipeline: lead ingestion stage")
	}

	if err := p.runLeadUpload(ctx, logger, accessToken, pending); err != nil {
		return apperrors.Wrapf(err, "pipeline: lead upload stage")
	}

	if err := p.runRegistrantDownload(ctx, logger, accessToken); err != nil {
		return apperrors.Wrapf(err, "pipeline: registrant download stage")
	}

	if err := p.runAttendeeDownload(ctx, logger, accessToken); err != nil {
		return apperrors.Wrapf(err, "pipeline: attendee download stage")
	}

	logger.Debug().Msg("synchronization run completed")
	return nil
}

// runWebinarSnapshot fetches every webinar from ten years back to three
// months ahead and overwrites the snapshot file. No ledger: the snapshot is
// a full replacement, not an incremental download.
func (p *Pipeline) runWebinarSnapshot(ctx context.Context, logger zerolog.Logger, accessToken string) error {
	logger.Debug().Msg("webinar snapshot: start")

	window := ComputeWindow(p.nowTime(), snapshotMonthsBack, snapshotMonthsForward)
	all, err := p.services.Webinars.GetAll(ctx, window.FromTime(), window.ToTime(), listPageSize, accessToken)
	if err != nil {
		return err
	}
	if err := p.storage.Snapshot.Save(all); err != nil {
		return err
	}

	logger.Debug().Int("webinars", len(all)).Msg("webinar snapshot: done")
	return nil
}

// runLeadIngestion drains the inbox. Sources are marked consumed here, no
// matter what the upload stage later does with the leads.
func (p *Pipeline) runLeadIngestion(logger zerolog.Logger) ([]leads.Lead, error) {
	logger.Debug().Msg("lead ingestion: start")

	pending, err := p.storage.Inbox.ReadAll()
	if err != nil {
		return nil, err
	}

	logger.Debug().Int("leads", len(pending)).Msg("lead ingestion: done")
	return pending, nil
}

// runLeadUpload registers new leads on their destination webinars. Leads
// are filtered against the upload ledger by contact ID, matched by exact
// webinar key, and checked against the live registrant list before a create
// call. What gets committed afterwards depends on the ledger policy:
// by identity commits every filtered lead, by outcome only the ones that
// were created or already existed.
func (p *Pipeline) runLeadUpload(ctx context.Context, logger zerolog.Logger, accessToken string, pending []leads.Lead) error {
	logger.Debug().Int("leads", len(pending)).Msg("lead upload: start")
	if len(pending) == 0 {
		logger.Debug().Msg("lead upload: nothing to do")
		return nil
	}

	window := ComputeWindow(p.nowTime(), uploadMonthsBack, uploadMonthsForward)
	available, err := p.services.Webinars.GetAll(ctx, window.FromTime(), window.ToTime(), uploadWebinarPageSize, accessToken)
	if err != nil {
		return err
	}
	if len(available) == 0 {
		// Every lead becomes a no-match skip below; under the identity
		// policy they are still committed so they are never retried.
		logger.Debug().Msg("lead upload: no webinars in window")
	}

	leadKey := func(l leads.Lead) string { return l.ContactID }
	filtered, err := ledger.FilterUnprocessed(p.storage.UploadLedger, pending, leadKey)
	if err != nil {
		return err
	}
	if len(filtered) == 0 {
		logger.Debug().Msg("lead upload: all leads already processed")
		return nil
	}

	matched := make([]leads.Lead, 0, len(filtered))
	for _, lead := range filtered {
		webinar := leads.FindTargetWebinar(lead, available)
		if webinar == nil {
			logger.Debug().Str("contact_id", lead.ContactID).
				Str("destination", lead.DestinationWebinarKey).
				Msg("lead upload: no matching webinar")
			continue
		}

		existing, err := p.services.Registrants.GetAll(ctx, webinar.OrganizerKey, webinar.WebinarKey, liveRegistrantPageSize, accessToken)
		if err != nil {
			return err
		}
		if !leads.RegistrantExists(existing, lead.Email) {
			registrant := registrants.NewRegistrant{
				FirstName: lead.FirstName,
				LastName:  lead.LastName,
				Email:     lead.Email,
				Phone:     p.dummyPhone,
				Source:    lead.Source + "_" + lead.SubSource,
			}
			if _, err := p.services.Registrants.Create(ctx, webinar.OrganizerKey, webinar.WebinarKey, registrant, accessToken); err != nil {
				return err
			}
		}
		matched = append(matched, lead)
	}

	committed := filtered
	if p.ledgerPolicy == config.LedgerByOutcome {
		committed = matched
	}
	if err := ledger.Commit(p.storage.UploadLedger, committed, leadKey); err != nil {
		return err
	}

	logger.Debug().Int("uploaded", len(matched)).Int("ledgered", len(committed)).Msg("lead upload: done")
	return nil
}

// runRegistrantDownload walks the webinars of the configured window whose
// earliest slot still ends in the future, earliest first, and downloads the
// detail record of every registrant not yet in the registrant ledger.
func (p *Pipeline) runRegistrantDownload(ctx context.Context, logger zerolog.Logger, accessToken string) error {
	logger.Debug().Msg("registrant download: start")

	now := p.nowTime()
	window := ComputeWindow(now, p.monthsBack, p.monthsFwd)
	all, err := p.services.Webinars.GetAll(ctx, window.FromTime(), window.ToTime(), listPageSize, accessToken)
	if err != nil {
		return err
	}

	registrantKey := func(r registrants.Registrant) string {
		return strconv.FormatInt(r.RegistrantKey, 10)
	}

	for _, webinar := range webinars.SelectUpcoming(all, now) {
		list, err := p.services.Registrants.GetAll(ctx, webinar.OrganizerKey, webinar.WebinarKey, listPageSize, accessToken)
		if err != nil {
			return err
		}

		filtered, err := ledger.FilterUnprocessed(p.storage.RegistrantLedger, list, registrantKey)
		if err != nil {
			return err
		}
		if len(filtered) == 0 {
			continue
		}

		details := make([]registrants.Detail, 0, len(filtered))
		seen := make(map[int64]struct{}, len(filtered))
		for _, registrant := range filtered {
			detail, err := p.services.Registrants.GetDetail(ctx, webinar.OrganizerKey, webinar.WebinarKey, registrant.RegistrantKey, accessToken)
			if err != nil {
				return err
			}
			if _, ok := seen[detail.RegistrantKey]; ok {
				continue
			}
			seen[detail.RegistrantKey] = struct{}{}
			details = append(details, *detail)
		}

		if err := p.storage.RegistrantFiles.Save(details, webinar.WebinarKey); err != nil {
			return err
		}
		if err := ledger.Commit(p.storage.RegistrantLedger, filtered, registrantKey); err != nil {
			return err
		}

		logger.Debug().Str("webinar_key", webinar.WebinarKey).
			Int("registrants", len(filtered)).Msg("registrant download: webinar done")
	}

	logger.Debug().Msg("registrant download: done")
	return nil
}

// runAttendeeDownload is the complement of the registrant download: it
// walks the webinars of the same window whose earliest slot already ended,
// since attendance only exists after a session is over. Ledger keys join
// the webinar key and the registrant key with a delimiter because
// registrant keys are not unique across webinars and both parts are
// numeric strings.
func (p *Pipeline) runAttendeeDownload(ctx context.Context, logger zerolog.Logger, accessToken string) error {
	logger.Debug().Msg("attendee download: start")

	now := p.nowTime()
	window := ComputeWindow(now, p.monthsBack, p.monthsFwd)
	all, err := p.services.Webinars.GetAll(ctx, window.FromTime(), window.ToTime(), listPageSize, accessToken)
	if err != nil {
		return err
	}

	for _, webinar := range webinars.SelectEnded(all, now) {
		attendeeKey := func(a attendees.Participation) string {
			return webinar.WebinarKey + ":" + a.RegistrantKey
		}

		list, err := p.services.Attendees.GetAll(ctx, webinar.OrganizerKey, webinar.WebinarKey, listPageSize, accessToken)
		if err != nil {
			return err
		}

		filtered, err := ledger.FilterUnprocessed(p.storage.AttendeeLedger, list, attendeeKey)
		if err != nil {
			return err
		}
		if len(filtered) == 0 {
			continue
		}

		details := make([]attendees.Detail, 0, len(filtered))
		seen := make(map[int64]struct{}, len(filtered))
		for _, participation := range filtered {
			detail, err := p.services.Attendees.GetDetail(ctx, webinar.OrganizerKey, webinar.WebinarKey,
				participation.SessionKey, participation.RegistrantKey, accessToken)
			if err != nil {
				return err
			}
			if _, ok := seen[detail.RegistrantKey]; ok {
				continue
			}
			seen[detail.RegistrantKey] = struct{}{}
			details = append(details, *detail)
		}

		if err := p.storage.AttendeeFiles.Save(details, webinar.WebinarKey); err != nil {
			return err
		}
		if err := ledger.Commit(p.storage.AttendeeLedger, filtered, attendeeKey); err != nil {
			return err
		}

		logger.Debug().Str("webinar_key", webinar.WebinarKey).
			Int("attendees", len(filtered)).Msg("attendee download: webinar done")
	}

	logger.Debug().Msg("attendee download: done")
	return nil
}
