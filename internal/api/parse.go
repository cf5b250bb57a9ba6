package api

import (
	"github.com/tidwall/gjson"

	"github.com/diogo/voicechat/internal/audio"
	apierrors "github.com/diogo/voicechat/internal/errors"
	"github.com/diogo/voicechat/internal/models"
)

// Response field paths
const (
	PathStatus       = "status"
	PathTranscript   = "transcript"
	PathResponseText = "response_text"
	PathResponse     = "response"
	PathAudio        = "audio"
	PathMessage      = "message"
)

// parseTurnReply validates a backend response and produces a TurnReply.
// Validation fails closed: any missing or malformed field rejects the
// whole response, a partial reply never reaches the session.
func parseTurnReply(body []byte) (*models.TurnReply, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewProtocolError("", "response is not valid JSON")
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return nil, apierrors.NewProtocolError("", "response is not a JSON object")
	}

	status := parsed.Get(PathStatus)
	if !status.Exists() {
		return nil, apierrors.NewProtocolError("", "response has no status field")
	}
	if status.String() != models.StatusSuccess {
		message := parsed.Get(PathMessage).String()
		if message == "" {
			message = "backend reported failure"
		}
		return nil, apierrors.NewProtocolError(status.String(), message)
	}

	// Newer backends report the reply under response_text; older ones
	// under response. Either satisfies the contract, neither is an error.
	replyText := parsed.Get(PathResponseText)
	if !replyText.Exists() {
		replyText = parsed.Get(PathResponse)
	}
	if !replyText.Exists() || replyText.Type != gjson.String {
		return nil, apierrors.NewProtocolError(status.String(), "response carries no reply text")
	}

	reply := &models.TurnReply{
		Transcript: parsed.Get(PathTranscript).String(),
		Reply:      replyText.String(),
	}

	audioField := parsed.Get(PathAudio)
	if audioField.Exists() && audioField.String() != "" {
		if audioField.Type != gjson.String {
			return nil, apierrors.NewProtocolError(status.String(), "audio field is not a string")
		}
		decoded, err := audio.DecodeHex(audioField.String())
		if err != nil {
			return nil, err
		}
		reply.Audio = decoded
	}

	return reply, nil
}
