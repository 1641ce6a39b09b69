package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"eventconnect/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestInquiryRepository_Create(t *testing.T) {
	ctx := context.Background()
	sentAt := time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)
	msgID := "gmail-msg-1"

	tests := []struct {
		name    string
		inquiry *domain.Inquiry
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "success with message id",
			inquiry: &domain.Inquiry{
				EventRequestID: "ev-1",
				PartnerID:      "p-1",
				EmailSubject:   "Inquiry",
				EmailContent:   "Hello",
				Status:         domain.InquiryStatusSent,
				MessageID:      &msgID,
				HasAttachment:  true,
				SentAt:         sentAt,
				CreatedAt:      sentAt,
				UpdatedAt:      sentAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO event_inquiries`).
					WithArgs("ev-1", "p-1", "Inquiry", "Hello", domain.InquiryStatusSent, msgID, true, sentAt, sentAt, sentAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("inq-1"))
			},
		},
		{
			name: "success with nil message id",
			inquiry: &domain.Inquiry{
				EventRequestID: "ev-1",
				PartnerID:      "p-1",
				EmailSubject:   "Inquiry",
				EmailContent:   "Hello",
				Status:         domain.InquiryStatusSent,
				SentAt:         sentAt,
				CreatedAt:      sentAt,
				UpdatedAt:      sentAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO event_inquiries`).
					WithArgs("ev-1", "p-1", "Inquiry", "Hello", domain.InquiryStatusSent, nil, false, sentAt, sentAt, sentAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("inq-2"))
			},
		},
		{
			name: "db error",
			inquiry: &domain.Inquiry{
				EventRequestID: "ev-1",
				PartnerID:      "p-1",
				SentAt:         sentAt,
				CreatedAt:      sentAt,
				UpdatedAt:      sentAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO event_inquiries`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewInquiryRepository(db)
			err = repo.Create(ctx, tt.inquiry)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.NotEmpty(t, tt.inquiry.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInquiryRepository_ListByPartnerID(t *testing.T) {
	ctx := context.Background()
	sentAt := time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)
	eventDate := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

	cols := []string{
		"id", "event_request_id", "partner_id", "email_subject", "email_content", "status",
		"message_id", "has_attachment", "sent_at", "created_at", "updated_at",
		"event_name", "event_type", "event_date", "city", "attendees",
	}

	t.Run("success with null message id", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(cols).
			AddRow("inq-1", "ev-1", "p-1", "Inquiry", "Hello", "sent",
				"gmail-msg-1", true, sentAt, sentAt, sentAt,
				"Tech Summit", "conference", eventDate, "Madrid", 150).
			AddRow("inq-2", "ev-2", "p-1", "Other", "Hi", "opened",
				nil, false, sentAt, sentAt, sentAt,
				"Spring Gala", "gala", eventDate, "Sevilla", 80)
		mock.ExpectQuery(`SELECT (.+) FROM event_inquiries i\s+JOIN event_requests e`).
			WithArgs("p-1").
			WillReturnRows(rows)

		repo := NewInquiryRepository(db)
		got, err := repo.ListByPartnerID(ctx, "p-1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.NotNil(t, got[0].MessageID)
		require.Equal(t, "gmail-msg-1", *got[0].MessageID)
		require.Equal(t, "Tech Summit", got[0].EventName)
		require.Nil(t, got[1].MessageID)
		require.Equal(t, "Spring Gala", got[1].EventName)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM event_inquiries i`).
			WithArgs("p-none").
			WillReturnRows(sqlmock.NewRows(cols))

		repo := NewInquiryRepository(db)
		got, err := repo.ListByPartnerID(ctx, "p-none")
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Len(t, got, 0)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInquiryRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE event_inquiries`).
					WithArgs("opened", "inq-1", "p-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "wrong partner yields not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE event_inquiries`).
					WithArgs("opened", "inq-1", "p-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE event_inquiries`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewInquiryRepository(db)
			err = repo.UpdateStatus(ctx, "inq-1", "p-1", "opened")
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
