package speech

import "time"

// google TTS service limits, enforced independently: the segmenter keeps
// every utterance under the length ceiling, the chunker keeps every request
// under the byte ceiling
const (
	MaxUtteranceLen = 200  // runes per utterance
	MaxRequestBytes = 4900 // utf-8 bytes per synthesize request, SSML included
)

// monthly character quota
const (
	MonthlyCharLimit  = 1_000_000
	warningThreshold  = 0.80
	criticalThreshold = 0.90
)

// network timeouts
const (
	ttsHTTPTimeout = 2 * time.Minute
)
