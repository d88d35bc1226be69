package services

import (
	"fmt"
	"log"

	"document-approval-api/models"
)

// MailSender is the slice of config.Mailer the notifier needs.
type MailSender interface {
	Enabled() bool
	Send(to []string, subject, html string) error
}

// MailNotifier delivers lifecycle events over e-mail. Delivery is strictly
// best effort: failures are logged and the request proceeds.
type MailNotifier struct {
	mailer MailSender
	users  UserStore
}

func NewMailNotifier(mailer MailSender, users UserStore) *MailNotifier {
	return &MailNotifier{mailer: mailer, users: users}
}

func documentMeta(doc *models.Document) []emailMetaItem {
	return []emailMetaItem{
		{Label: "Document", Value: doc.Title},
		{Label: "Tracking number", Value: doc.TrackingNumber},
		{Label: "Step", Value: fmt.Sprintf("%d of %d", doc.CurrentStep, doc.TotalSteps)},
		{Label: "Status", Value: doc.Status},
	}
}

// StepPending tells the approver of the now-current step that a document is
// waiting on them.
func (n *MailNotifier) StepPending(doc *models.Document, approverID int) {
	if !n.mailer.Enabled() {
		return
	}
	approver, err := n.users.FindByID(approverID)
	if err != nil {
		log.Printf("notify: approver %d lookup failed: %v", approverID, err)
		return
	}
	subject := fmt.Sprintf("Approval needed: %s", doc.Title)
	body := buildEmail(subject, []string{
		fmt.Sprintf("Dear %s,", approver.Name),
		"A document is waiting for your decision.",
	}, documentMeta(doc))
	n.send([]string{approver.Email}, subject, body)
}

// DocumentRejected tells the uploader their document was rejected.
func (n *MailNotifier) DocumentRejected(doc *models.Document) {
	if !n.mailer.Enabled() {
		return
	}
	uploader, err := n.users.FindByID(doc.UploadedBy)
	if err != nil {
		log.Printf("notify: uploader %d lookup failed: %v", doc.UploadedBy, err)
		return
	}
	meta := documentMeta(doc)
	if doc.RejectionReason != nil {
		meta = append(meta, emailMetaItem{Label: "Reason", Value: *doc.RejectionReason})
	}
	subject := fmt.Sprintf("Rejected: %s", doc.Title)
	body := buildEmail(subject, []string{
		fmt.Sprintf("Dear %s,", uploader.Name),
		fmt.Sprintf("Your document was rejected at step %d.", doc.CurrentStep),
	}, meta)
	n.send([]string{uploader.Email}, subject, body)
}

// DocumentCompleted tells the uploader all steps were approved.
func (n *MailNotifier) DocumentCompleted(doc *models.Document) {
	if !n.mailer.Enabled() {
		return
	}
	uploader, err := n.users.FindByID(doc.UploadedBy)
	if err != nil {
		log.Printf("notify: uploader %d lookup failed: %v", doc.UploadedBy, err)
		return
	}
	subject := fmt.Sprintf("Approved: %s", doc.Title)
	body := buildEmail(subject, []string{
		fmt.Sprintf("Dear %s,", uploader.Name),
		fmt.Sprintf("Your document passed all %d approval steps.", doc.TotalSteps),
	}, documentMeta(doc))
	n.send([]string{uploader.Email}, subject, body)
}

func (n *MailNotifier) send(to []string, subject, body string) {
	if err := n.mailer.Send(to, subject, body); err != nil {
		log.Printf("notify: send to %v failed: %v", to, err)
	}
}
