package chatbot

import (
	"context"
	"fmt"

	dialogflow "cloud.google.com/go/dialogflow/apiv2"
	"cloud.google.com/go/dialogflow/apiv2/dialogflowpb"
)

// Dialogflow detects intents against a Dialogflow ES agent. Credentials come
// from the usual GOOGLE_APPLICATION_CREDENTIALS lookup.
type Dialogflow struct {
	ProjectID string
	Sessions  *dialogflow.SessionsClient
}

func NewDialogflow(ctx context.Context, projectID string) (*Dialogflow, error) {
	client, err := dialogflow.NewSessionsClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("dialogflow sessions client: %w", err)
	}
	return &Dialogflow{ProjectID: projectID, Sessions: client}, nil
}

func (d *Dialogflow) DetectIntent(ctx context.Context, sessionID, text, languageCode string) (*Result, error) {
	req := &dialogflowpb.DetectIntentRequest{
		Session: fmt.Sprintf("projects/%s/agent/sessions/%s", d.ProjectID, sessionID),
		QueryInput: &dialogflowpb.QueryInput{
			Input: &dialogflowpb.QueryInput_Text{
				Text: &dialogflowpb.TextInput{
					Text:         text,
					LanguageCode: languageCode,
				},
			},
		},
	}
	resp, err := d.Sessions.DetectIntent(ctx, req)
	if err != nil {
		return nil, err
	}
	qr := resp.GetQueryResult()
	res := &Result{
		FulfillmentText: qr.GetFulfillmentText(),
		Confidence:      qr.GetIntentDetectionConfidence(),
	}
	if intent := qr.GetIntent(); intent != nil {
		res.Intent = intent.GetDisplayName()
	}
	return res, nil
}

func (d *Dialogflow) Close() error { return d.Sessions.Close() }
