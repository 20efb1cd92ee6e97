package taxonomy

// Overall returns the whole-image reason taxonomy. No overall item carries a
// free-text field today, but nothing downstream assumes that stays true.
func Overall() []Group {
	return overallGroups
}

// Flaw returns the localized-marker reason taxonomy. Exactly one item across
// both taxonomies (others:other) carries a free-text field.
func Flaw() []Group {
	return flawGroups
}

var overallGroups = []Group{
	{
		Key:   "overall",
		Title: "Overall Reasons",
		Items: []Item{
			{
				Key:     "style_unreal",
				Label:   "Overall visual style looks unnatural",
				Example: "Oil-painting look, sketch look, strange lighting, abnormal focus, image distortion, skin overly smooth like a mannequin, unnatural animal fur, subject/background not blending with a \"sticker\" feel, blurred or abnormal subject edges, overly strong AI look, repeated facial expressions, stiff/blank eyes, etc.",
			},
			{
				Key:     "detail_missing",
				Label:   "Overall image is blurry or has severe detail loss",
				Example: "Large areas of the image are blurry/unclear and lack texture, as if \"reduced sharpness\", \"over-smoothed\", or \"globally defocused\". For example: many faces are blurry/odd, building details missing, landscape details missing, all text smeared together.",
			},
			{
				Key:     "many_subject_abnormal",
				Label:   "Many subjects are abnormal",
				Example: "Many people have abnormal limb structure/count, group interactions are uncoordinated, multiple animals have multiple heads/limbs, every hand has weird finger counts/structures, many people/animals have abnormal proportions, overall object materials/textures look unreal, etc.",
			},
			{
				Key:     "many_composition_abnormal",
				Label:   "Many composition issues",
				Example: "Many occlusions, abnormal perspective relationships, many limbs crossing through or broken, etc.",
			},
			{
				Key:     "physics_illogical",
				Label:   "Violates real-world physics",
				Example: "Most subjects are abnormal, e.g., many vehicles driving the wrong way, everyone wearing winter clothes on a beach, etc.",
			},
			{
				Key:     "perspective_abnormal",
				Label:   "Abnormal perspective",
				Example: "Distorted perspective, illogical distance ratios between background and subject, etc.",
			},
			{
				Key:     "large_text_abnormal",
				Label:   "Large-area text is abnormal",
				Example: "Large areas of text are abnormal, including wrong meaning, no logic, not a real language but garbled characters, missing text, etc.",
			},
		},
	},
}

var flawGroups = []Group{
	{
		Key:   "face",
		Title: "Face Issues",
		Items: []Item{
			{Key: "eye_structure", Label: "Abnormal eye structure or placement", Example: "Eyeball size, eyelid shape, eyelash shape"},
			{Key: "eye_gaze", Label: "Blank stare / unreasonable gaze direction"},
			{Key: "nose_structure", Label: "Abnormal nose structure or placement"},
			{Key: "mouth_structure", Label: "Abnormal mouth structure or placement"},
			{Key: "teeth_structure", Label: "Abnormal teeth structure or count"},
			{Key: "ear_structure", Label: "Abnormal ear structure or placement"},
			{Key: "ear_count", Label: "Abnormal ear count"},
			{Key: "eyebrow_shape", Label: "Odd eyebrow shape"},
			{Key: "feature_mismatch", Label: "Mismatched features", Example: "Male head on female body, cat with horse ears"},
			{Key: "face_repetition", Label: "Repeated faces", Example: "Different people have exactly the same face"},
			{Key: "face_structure", Label: "Overall facial structure is wrong", Example: "Misaligned facial features, deformed facial contours, etc."},
		},
	},
	{
		Key:   "hair",
		Title: "Hair/Fur Issues",
		Items: []Item{
			{Key: "hair_shape", Label: "Abnormal hair/fur shape or texture", Example: "Discontinuous, broken, looks fractured"},
			{Key: "hair_texture", Label: "Unrealistic hair/fur material/feel"},
		},
	},
	{
		Key:   "hands",
		Title: "Hand Issues",
		Items: []Item{
			{Key: "finger_count", Label: "Abnormal finger count"},
			{Key: "hand_pose", Label: "Unnatural or impossible hand pose"},
			{Key: "nail_detail", Label: "Abnormal nail/skin detail"},
			{Key: "hand_structure", Label: "Abnormal hand structure"},
		},
	},
	{
		Key:   "body",
		Title: "Body Issues",
		Items: []Item{
			{
				Key:     "body_structure",
				Label:   "Abnormal body structure",
				Example: "Unreasonable joint angles, overly thick instep, deformed toes, broken bird wings, zebra stripes blurred or running the wrong way, etc.",
			},
			{
				Key:     "body_part_count",
				Label:   "Abnormal number of body parts",
				Example: "Humans with wrong limb count, animals with multiple heads, etc.",
			},
			{
				Key:     "body_proportion",
				Label:   "Unnatural body proportions",
				Example: "Neck too long / shoulders too wide or narrow / limbs too long or short / upper vs lower body proportions are off / abnormal limb thickness, etc.",
			},
		},
	},
	{
		Key:   "objects",
		Title: "Object Issues",
		Items: []Item{
			{
				Key:     "object_structure",
				Label:   "Abnormal object structure",
				Example: "Clothing textures abnormal or discontinuous, accessories suddenly broken/bent/twisted, ground collapses, trees snapped",
			},
			{
				Key:     "object_position",
				Label:   "Object appears in abnormal position",
				Example: "Earrings on hands, LEGO pieces floating",
			},
			{Key: "object_scale", Label: "Object size/scale unreasonable, unnatural, or inconsistent"},
			{
				Key:     "object_color",
				Label:   "Abnormal color distribution",
				Example: "Abrupt blocks, uneven distribution",
			},
			{
				Key:     "object_material",
				Label:   "Unrealistic material rendering",
				Example: "Metal reflections, glass, fabric",
			},
		},
	},
	{
		Key:   "others",
		Title: "Other Issues",
		Items: []Item{
			{
				Key:     "lighting_shadow",
				Label:   "Abnormal lighting/shadows",
				Example: "Weird light direction, only one bright/dark spot, unreasonable shadows, inverted/floating shadows, abnormal focus, local defocus",
			},
			{
				Key:     "blur_detail",
				Label:   "Parts of the image are blurry or missing detail",
				Example: "Only a local area lacks detail while the rest is clear. This is a \"local issue\", not a whole-image issue. For example: some text/patterns are blurry, face overall clear but eye details missing, face clear but teeth blurry, city scene clear but neon signs blurred, etc.",
			},
			{Key: "odd_structures", Label: "Abrupt or irrelevant structures appear"},
			{
				Key:     "subject_edges",
				Label:   "Abnormal subject edges",
				Example: "Blurry, blending with objects or background",
			},
			{
				Key:     "physics_logic",
				Label:   "Violates real-world physics",
				Example: "Some subjects are odd, e.g., one or more people wearing down coats and scarves on a beach where most people are in swimwear",
			},
			{Key: "text_abnormal", Label: "Text abnormalities", Example: "Wrong meaning, nonsensical, incomplete text, abnormal font, etc."},
			{Key: "other", Label: "Other", HasTextInput: true},
		},
	},
}
