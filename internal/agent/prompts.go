// internal/agent/prompts.go
package agent

import (
	"fmt"

	"github.com/zerotomarket/campaign-service/pkg/schema"
)

func strategistPrompt(p schema.ProductInput) string {
	return fmt.Sprintf(`Act as a senior marketing strategist. Analyze this product:

Product: %s
Description: %s
Target Audience: %s
Industry: %s

Provide a strategic analysis with:
1. Unique Value Proposition (1 sentence)
2. Marketing Angle (1 sentence)
3. Key Messaging Themes (3 bullet points)
4. Target Persona Details
5. Recommended Tone (professional/casual/technical)

Be specific and actionable.`, p.Name, p.Description, p.TargetAudience, p.Industry)
}

func researcherPrompt(p schema.ProductInput) string {
	return fmt.Sprintf(`Act as a market research specialist. Analyze the competitive landscape for:

Product: %s
Description: %s
Industry: %s
Target Audience: %s

Provide competitive intelligence including:
1. Market trends in this space
2. Common competitor messaging patterns
3. Pricing strategies observed
4. Content marketing approaches
5. Recommendations based on market analysis

Focus on actionable competitive insights.`, p.Name, p.Description, p.Industry, p.TargetAudience)
}

func creatorPrompt(p schema.ProductInput, platform, angle, tone string) string {
	return fmt.Sprintf(`Create %s content for:

Product: %s
Description: %s
Strategy: %s
Target: %s
Tone: %s

Platform Guidelines:
- Twitter: 280 chars max, engaging, 2-3 hashtags
- LinkedIn: Professional, 2-3 sentences, value-focused
- Blog: Compelling headline and 2-sentence preview
- Email: Subject line + opening sentence

Create compelling, specific content that resonates with the target audience.`,
		platform, p.Name, p.Description, angle, p.TargetAudience, tone)
}

func coordinatorPrompt(p schema.ProductInput, valueProp, trends string, pieces int) string {
	return fmt.Sprintf(`As a campaign coordinator, analyze this complete marketing campaign:

Product: %s
Strategy: %s
Research Insights: %s
Content Created: %d pieces

Provide:
1. Campaign Readiness Score (1-10)
2. Key Strengths (2 points)
3. Optimization Recommendations (2 points)
4. Publishing Timeline (when to post each piece)
5. Success Metrics to track

Be concise and actionable.`, p.Name, valueProp, trends, pieces)
}
