package prompt

// Placeholders are replaced verbatim; templates never go through fmt.

const IndexTemplate = `You are an expert curriculum designer.
Read the text between <source_text> tags and turn it into a learning index.

<source_text>
{{TEXT}}
</source_text>

<instructions>
1. Identify the single main topic of the text.
2. Write a topic summary of 2 to 4 sentences.
3. Split the material into an ordered learning path of 3 to 12 modules.
4. Each module has a unique integer "order" starting at 1, a short "title",
   a one or two sentence "description" and a "difficulty" that is exactly one of
   "Beginner", "Intermediate" or "Advanced".
5. Write in the same language as the source text.
</instructions>

<output_format>
Respond with ONLY valid JSON, no markdown and no commentary:
{
  "main_topic": "string",
  "topic_summary": "string",
  "modules": [
    {"order": 1, "title": "string", "description": "string", "difficulty": "Beginner"}
  ]
}
</output_format>`

const EnrichTemplate = `You are a research librarian. Use Google Search to find the best reading
resources (articles, official documentation, tutorials) for this learning module.

Main topic: {{TOPIC}}
Module: {{TITLE}}
Module description: {{DESCRIPTION}}

Prefer primary sources and well-known references. For each resource you rely on,
write one sentence on what the reader will learn from it.`

const AnalysisTemplate = `You are a senior engineer writing a technical study note about one resource.

<resource>
Title: {{TITLE}}
URL: {{URL}}
Content:
{{TEXT}}
</resource>

<instructions>
Base every statement on the resource content. Produce five sections:
- "technical_explanation": a precise technical explanation of the core ideas.
- "narrative_explanation": the same ideas explained as a story a newcomer can follow.
- "implementation_steps": ordered list of concrete steps to apply the ideas.
- "quotes": list of short verbatim quotes from the content that support the explanation.
- "blind_spots": what the resource does not cover or gets wrong.
</instructions>

<output_format>
Respond with ONLY valid JSON, no markdown and no commentary:
{
  "technical_explanation": "string",
  "narrative_explanation": "string",
  "implementation_steps": ["string"],
  "quotes": ["string"],
  "blind_spots": "string"
}
</output_format>`
