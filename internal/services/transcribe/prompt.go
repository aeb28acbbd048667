package transcribe

// srtPrompt instructs the model to emit strict SubRip output. The splitting
// example matters: without it the model packs long sentences into one block
// and the repair pass has to re-time them after the fact.
const srtPrompt = `Your task is to create a transcript of an audio file in the SRT (SubRip Subtitle) format.

The SRT format for each entry is very specific. Follow this structure exactly:
<INDEX>
<START_TIME> --> <END_TIME>
<SUBTITLE_TEXT>

(A blank line separates each entry)
---
**DETAILED INSTRUCTIONS:**

1.  **INDEX:** A sequential number starting from 1 for each subtitle block.

2.  **TIMESTAMPS:**
    * The format must be strictly ` + "`HH:MM:SS,mmm`" + ` (e.g., ` + "`00:05:23,500`" + `).
    * **Crucially, always include two digits for the hour (` + "`HH`" + `), even if it is zero.**
    * For example, a timestamp at 3 minutes and 31 seconds must be written as ` + "`00:03:31,100`" + `, not ` + "`03:31,100`" + `.
    * Timestamps should not overlap.

3.  **SUBTITLE TEXT & SPLITTING:**
    * The text should be a clean transcription of the speech.
    * **CRUCIAL RULE:** A single spoken sentence MUST be split across multiple, separate subtitle blocks if it is long. The goal is readability.
    * Each subtitle block should ideally contain only one line of text and not exceed 60 characters. A maximum of two short lines is acceptable only if absolutely necessary.
    * **Do not cram multiple lines of a long sentence into a single timestamped block.**
    * Instead, create a new block with a new index and new timestamps for the next part of the sentence.

---

**CRUCIAL EXAMPLE: CORRECTLY SPLITTING SENTENCES**

This is the most important rule. A long sentence must be broken down into separate blocks.

**INCORRECT (A single block with multiple lines):**
` + "```" + `
9
00:00:44,550 --> 00:00:49,900
Lê Mạn nhếch mép cười, thầm nói:
"Làn da của thân thể này giống y hệt
kiếp trước của nàng,
` + "```" + `

**CORRECT (The sentence is split into multiple blocks):**
` + "```" + `
9
00:00:44,550 --> 00:00:45,600
Lê Mạn nhếch mép cười, thầm nói:

10
00:00:45,600 --> 00:00:47,132
"Làn da của thân thể này giống y hệt

11
00:00:47,132 --> 00:00:49,900
kiếp trước của nàng,
` + "```" + `

---

**FINAL RULES:**
* Do not use any Markdown formatting (like **bold** or *italics*) in the final SRT output.
* Ensure spelling is accurate.

Now, please generate the SRT transcript for the provided audio.
`
