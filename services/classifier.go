package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Private-Fox7/Empathy-Pulse/config"
)

// Classification is the classifier output attached to a feedback record.
type Classification struct {
	Emotion             string  `json:"emotion"`
	EmotionConfidence   float64 `json:"emotion_confidence"`
	Sentiment           string  `json:"sentiment"`
	SentimentConfidence float64 `json:"sentiment_confidence"`
}

// NeutralClassification is the fallback used whenever the classifier fails.
// Classification failure must never block feedback submission.
func NeutralClassification() Classification {
	return Classification{
		Emotion:             "neutral",
		EmotionConfidence:   0.5,
		Sentiment:           "NEUTRAL",
		SentimentConfidence: 0.5,
	}
}

// ClassifierService calls the HuggingFace Inference API to tag feedback
// text with an emotion and a sentiment.
type ClassifierService struct {
	baseURL        string
	apiKey         string
	emotionModel   string
	sentimentModel string
	client         *http.Client
}

// NewClassifierService builds a classifier client from the loaded config.
func NewClassifierService() *ClassifierService {
	cfg := config.AppConfig.Classifier
	if cfg.Token == "" {
		log.Printf("⚠️ HF_API_TOKEN not set, feedback will be tagged with the neutral default")
	}

	return &ClassifierService{
		baseURL:        cfg.BaseURL,
		apiKey:         cfg.Token,
		emotionModel:   cfg.EmotionModel,
		sentimentModel: cfg.SentimentModel,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// modelScore is one label/score pair from a text-classification model.
type modelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// AnalyzeFeedback runs both models over the feedback text. Any failure on
// either model degrades the whole result to the neutral default.
func (cs *ClassifierService) AnalyzeFeedback(text string) Classification {
	emotion, err := cs.classify(cs.emotionModel, text)
	if err != nil {
		log.Printf("⚠️ Error analyzing feedback: %v", err)
		return NeutralClassification()
	}

	sentiment, err := cs.classify(cs.sentimentModel, text)
	if err != nil {
		log.Printf("⚠️ Error analyzing feedback: %v", err)
		return NeutralClassification()
	}

	return Classification{
		Emotion:             emotion.Label,
		EmotionConfidence:   emotion.Score,
		Sentiment:           sentiment.Label,
		SentimentConfidence: sentiment.Score,
	}
}

// classify sends text to one model and returns its top-scoring label.
func (cs *ClassifierService) classify(model, text string) (*modelScore, error) {
	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, cs.baseURL+"/models/"+model, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+cs.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := cs.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	// The inference API answers one ranked score list per input
	var results [][]modelScore
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode classifier response: %w", err)
	}
	if len(results) == 0 || len(results[0]) == 0 {
		return nil, fmt.Errorf("classifier returned no scores")
	}

	top := results[0][0]
	for _, score := range results[0][1:] {
		if score.Score > top.Score {
			top = score
		}
	}
	return &top, nil
}
