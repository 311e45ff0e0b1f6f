package gcp

import (
	"testing"

	"cloud.google.com/go/speech/apiv1/speechpb"
)

func TestInferEncoding(t *testing.T) {
	cases := map[string]speechpb.RecognitionConfig_AudioEncoding{
		"audio/wav":              speechpb.RecognitionConfig_LINEAR16,
		"audio/webm;codecs=opus": speechpb.RecognitionConfig_WEBM_OPUS,
		"audio/mpeg":             speechpb.RecognitionConfig_MP3,
		"audio/ogg":              speechpb.RecognitionConfig_OGG_OPUS,
		"":                       speechpb.RecognitionConfig_ENCODING_UNSPECIFIED,
	}
	for mime, want := range cases {
		if got := inferEncoding(mime); got != want {
			t.Fatalf("%q: got %v want %v", mime, got, want)
		}
	}
}

func TestJoinTranscriptSkipsEmpty(t *testing.T) {
	resp := &speechpb.LongRunningRecognizeResponse{
		Results: []*speechpb.SpeechRecognitionResult{
			{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: " today was hard "}}},
			{Alternatives: nil},
			{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "but I managed"}}},
		},
	}
	if got := joinTranscript(resp); got != "today was hard but I managed" {
		t.Fatalf("unexpected transcript: %q", got)
	}
	if got := joinTranscript(nil); got != "" {
		t.Fatalf("nil response: %q", got)
	}
}
