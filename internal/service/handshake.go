package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"anonu/internal/apperrors"
	"anonu/internal/ids"
	"anonu/internal/kv"
	"anonu/internal/models"
	"anonu/internal/repository"
)

type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// ChatProvisioner builds the channel created when an offer is accepted. The
// handshake engine persists it as part of the acceptance's effect set.
type ChatProvisioner interface {
	Provision(studentID, psychologistID string) models.Chat
}

// HandshakeService runs the per-(post, psychologist) offer state machine:
// none -> pending -> accepted | rejected, terminal states final. It is the
// only component that decides DM permissions; the rendering layer just
// reflects what it reports.
type HandshakeService struct {
	store       kv.Store
	accounts    *repository.Accounts
	posts       *repository.Posts
	chats       *repository.Chats
	provisioner ChatProvisioner
	log         zerolog.Logger
}

func NewHandshakeService(
	store kv.Store,
	accounts *repository.Accounts,
	posts *repository.Posts,
	chats *repository.Chats,
	provisioner ChatProvisioner,
	log zerolog.Logger,
) *HandshakeService {
	return &HandshakeService{
		store:       store,
		accounts:    accounts,
		posts:       posts,
		chats:       chats,
		provisioner: provisioner,
		log:         log,
	}
}

// OfferHelp records a psychologist's pending offer on a post and mirrors it
// onto the author's pendingDm queue in the same write.
func (s *HandshakeService) OfferHelp(ctx context.Context, postID, psychologistID string) (models.DmRequest, error) {
	accounts, err := s.accounts.Load(ctx)
	if err != nil {
		return models.DmRequest{}, err
	}
	caller, exists := accounts[psychologistID]
	if !exists {
		return models.DmRequest{}, apperrors.ErrAccountNotFound
	}
	if caller.Role != models.RolePsychologist {
		return models.DmRequest{}, apperrors.Forbidden("only psychologists can offer help")
	}

	posts, err := s.posts.Load(ctx)
	if err != nil {
		return models.DmRequest{}, err
	}
	i := repository.IndexByID(posts, postID)
	if i < 0 {
		return models.DmRequest{}, apperrors.ErrPostNotFound
	}
	post := &posts[i]

	if post.AuthorID == caller.ID {
		return models.DmRequest{}, apperrors.Forbidden("cannot offer help on your own post")
	}
	if post.RequestByPsychologist(caller.ID) != nil {
		return models.DmRequest{}, apperrors.ErrDuplicateOffer
	}

	request := models.DmRequest{
		ID:             ids.New("dmreq"),
		PsychologistID: caller.ID,
		Status:         models.RequestPending,
		CreatedAt:      time.Now().UTC(),
	}
	post.DmRequests = append(post.DmRequests, request)

	entries := []kv.Entry{s.posts.Entry(posts)}
	if author, ok := accounts[post.AuthorID]; ok {
		author.PendingDm = append(author.PendingDm, models.PendingDm{
			PostID:             post.ID,
			FromPsychologistID: caller.ID,
			RequestID:          request.ID,
		})
		accounts[author.ID] = author
		entries = append(entries, s.accounts.Entry(accounts))
	}

	if err := s.store.Write(ctx, entries...); err != nil {
		return models.DmRequest{}, err
	}

	s.log.Info().Str("post_id", post.ID).Str("request_id", request.ID).Msg("dm offer recorded")
	return request, nil
}

// ResolveOffer lets the post's author accept or reject a pending offer.
// The status change, the pendingDm removal and, on accept, the new chat all
// land in one atomic write. Returns the chat id on accept, "" on reject.
func (s *HandshakeService) ResolveOffer(ctx context.Context, postID, requestID string, decision Decision, callerID string) (string, error) {
	if decision != DecisionAccept && decision != DecisionReject {
		return "", apperrors.InvalidInput("decision must be accept or reject")
	}

	posts, err := s.posts.Load(ctx)
	if err != nil {
		return "", err
	}
	i := repository.IndexByID(posts, postID)
	if i < 0 {
		return "", apperrors.ErrPostNotFound
	}
	post := &posts[i]

	if post.AuthorID != callerID {
		return "", apperrors.Forbidden("only the post author can resolve an offer")
	}

	request := post.RequestByID(requestID)
	if request == nil || request.Status != models.RequestPending {
		// Terminal requests are a hard stop, never a silent no-op.
		return "", apperrors.ErrRequestNotFound
	}

	if decision == DecisionAccept {
		request.Status = models.RequestAccepted
	} else {
		request.Status = models.RequestRejected
	}

	accounts, err := s.accounts.Load(ctx)
	if err != nil {
		return "", err
	}
	author, exists := accounts[callerID]
	if !exists {
		return "", apperrors.ErrAccountNotFound
	}
	author.PendingDm = removePending(author.PendingDm, requestID)
	accounts[author.ID] = author

	entries := []kv.Entry{s.posts.Entry(posts), s.accounts.Entry(accounts)}

	var chatID string
	if decision == DecisionAccept {
		chats, err := s.chats.Load(ctx)
		if err != nil {
			return "", err
		}
		chat := s.provisioner.Provision(author.ID, request.PsychologistID)
		chats = append(chats, chat)
		entries = append(entries, s.chats.Entry(chats))
		chatID = chat.ID
	}

	if err := s.store.Write(ctx, entries...); err != nil {
		return "", err
	}

	s.log.Info().
		Str("request_id", requestID).
		Str("decision", string(decision)).
		Msg("dm offer resolved")
	return chatID, nil
}

// OfferStatus reports the state of the (post, psychologist) pair so the
// rendering layer can show a status label instead of the offer control once
// a request exists.
func (s *HandshakeService) OfferStatus(ctx context.Context, postID, psychologistID string) (models.RequestStatus, bool, error) {
	posts, err := s.posts.Load(ctx)
	if err != nil {
		return "", false, err
	}
	i := repository.IndexByID(posts, postID)
	if i < 0 {
		return "", false, apperrors.ErrPostNotFound
	}
	if request := posts[i].RequestByPsychologist(psychologistID); request != nil {
		return request.Status, true, nil
	}
	return "", false, nil
}

// PendingOffers returns the author-side notification queue.
func (s *HandshakeService) PendingOffers(ctx context.Context, accountID string) ([]models.PendingDm, error) {
	accounts, err := s.accounts.Load(ctx)
	if err != nil {
		return nil, err
	}
	account, exists := accounts[accountID]
	if !exists {
		return nil, apperrors.ErrAccountNotFound
	}
	return account.PendingDm, nil
}

func removePending(queue []models.PendingDm, requestID string) []models.PendingDm {
	out := make([]models.PendingDm, 0, len(queue))
	for _, p := range queue {
		if p.RequestID != requestID {
			out = append(out, p)
		}
	}
	return out
}
