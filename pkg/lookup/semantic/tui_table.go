package semantic

// tuiTable lists the UMLS semantic types and their default groups.
var tuiTable = []TUI{
	{1, "Organism", Entity},
	{2, "Plant", Entity},
	{3, "Alga", Entity},
	{4, "Fungus", Entity},
	{5, "Virus", Disorder},
	{6, "Rickettsia or Chlamydia", Disorder},
	{7, "Bacterium", Entity},
	{8, "Animal", Entity},
	{9, "Invertebrate", Entity},
	{10, "Vertebrate", Entity},
	{11, "Amphibian", Entity},
	{12, "Bird", Entity},
	{13, "Fish", Entity},
	{14, "Reptile", Entity},
	{15, "Mammal", Entity},
	{16, "Human", Subject},
	{17, "Anatomical Structure", Anatomy},
	{18, "Embryonic Structure", Anatomy},
	{19, "Congenital Abnormality", Disorder},
	{20, "Acquired Abnormality", Disorder},
	{21, "Fully Formed Anatomical Structure", Anatomy},
	{22, "Body System", Anatomy},
	{23, "Body Part, Organ, or Organ Component", Anatomy},
	{24, "Tissue", Anatomy},
	{25, "Cell", Anatomy},
	{26, "Cell Component", Anatomy},
	{28, "Gene or Genome", Finding},
	{29, "Body Location or Region", Anatomy},
	{30, "Body Space or Junction", Anatomy},
	{31, "Body Substance", Finding},
	{32, "Organism Attribute", Subject},
	{33, "Finding", Finding},
	{34, "Laboratory or Test Result", Lab},
	{37, "Injury or Poisoning", Disorder},
	{38, "Biologic Function", Phenomenon},
	{39, "Physiologic Function", Finding},
	{40, "Organism Function", Finding},
	{41, "Mental Process", Finding},
	{42, "Organ or Tissue Function", Finding},
	{43, "Cell Function", Finding},
	{44, "Molecular Function", Finding},
	{45, "Genetic Function", Finding},
	{46, "Pathologic Function", Finding},
	{47, "Disease or Syndrome", Disorder},
	{48, "Mental or Behavioral Dysfunction", Disorder},
	{49, "Cell or Molecular Dysfunction", Disorder},
	{50, "Experimental Model of Disease", Disorder},
	{51, "Event", Event},
	{52, "Activity", Event},
	{53, "Behavior", Finding},
	{54, "Social Behavior", Finding},
	{55, "Individual Behavior", Finding},
	{56, "Daily or Recreational Activity", Finding},
	{57, "Occupational Activity", Event},
	{58, "Health Care Activity", Procedure},
	{59, "Laboratory Procedure", Procedure},
	{60, "Diagnostic Procedure", Procedure},
	{61, "Therapeutic or Preventive Procedure", Procedure},
	{62, "Research Activity", Procedure},
	{63, "Molecular Biology Research Technique", Procedure},
	{64, "Governmental or Regulatory Activity", Event},
	{65, "Educational Activity", Procedure},
	{66, "Machine Activity", Procedure},
	{67, "Phenomenon or Process", Phenomenon},
	{68, "Human-caused Phenomenon or Process", Phenomenon},
	{69, "Environmental Effect of Humans", Phenomenon},
	{70, "Natural Phenomenon or Process", Phenomenon},
	{71, "Entity", Entity},
	{72, "Physical Object", Entity},
	{73, "Manufactured Object", Device},
	{74, "Medical Device", Device},
	{75, "Research Device", Device},
	{77, "Conceptual Entity", Finding},
	{78, "Idea or Concept", Finding},
	{79, "Temporal Concept", Time},
	{80, "Qualitative Concept", Modifier},
	{81, "Quantitative Concept", LabModifier},
	{82, "Spatial Concept", Modifier},
	{83, "Geographic Area", Entity},
	{85, "Molecular Sequence", Finding},
	{86, "Nucleotide Sequence", Finding},
	{87, "Amino Acid Sequence", Drug},
	{88, "Carbohydrate Sequence", Drug},
	{89, "Regulation or Law", Entity},
	{90, "Occupation or Discipline", Subject},
	{91, "Biomedical Occupation or Discipline", Title},
	{92, "Organization", Entity},
	{93, "Health Care Related Organization", Entity},
	{94, "Professional Society", Entity},
	{95, "Self-help or Relief Organization", Entity},
	{96, "Group", Subject},
	{97, "Professional or Occupational Group", Subject},
	{98, "Population Group", Subject},
	{99, "Family Group", Subject},
	{100, "Age Group", Subject},
	{101, "Patient or Disabled Group", Subject},
	{102, "Group Attribute", Subject},
	{103, "Chemical", Drug},
	{104, "Chemical Viewed Structurally", Drug},
	{109, "Organic Chemical", Drug},
	{110, "Steroid", Drug},
	{111, "Eicosanoid", Entity},
	{114, "Nucleic Acid, Nucleoside, or Nucleotide", Drug},
	{115, "Organophosphorous Compound", Drug},
	{116, "Amino Acid, Peptide, or Protein", Drug},
	{118, "Carbohydrate", Drug},
	{119, "Lipid", Drug},
	{120, "Chemical Viewed Functionally", Drug},
	{121, "Pharmacologic Substance", Drug},
	{122, "Biomedical or Dental Material", Drug},
	{123, "Biologically Active Substance", Drug},
	{124, "Neuroreactive Substance or Biogenic Amine", Drug},
	{125, "Hormone", Drug},
	{126, "Enzyme", Drug},
	{127, "Vitamin", Drug},
	{129, "Immunologic Factor", Drug},
	{130, "Indicator, Reagent, or Diagnostic Aid", Drug},
	{131, "Hazardous or Poisonous Substance", Drug},
	{167, "Substance", Drug},
	{168, "Food", Drug},
	{169, "Functional Concept", Finding},
	{170, "Intellectual Product", Finding},
	{171, "Language", Entity},
	{184, "Sign or Symptom", Finding},
	{185, "Classification", Finding},
	{190, "Anatomical Abnormality", Disorder},
	{191, "Neoplastic Process", Disorder},
	{192, "Receptor", Finding},
	{194, "Archaeon", Entity},
	{195, "Antibiotic", Drug},
	{196, "Element, Ion, or Isotope", Drug},
	{197, "Inorganic Chemical", Drug},
	{200, "Clinical Drug", Drug},
	{201, "Clinical Attribute", ClinicalAttribute},
	{203, "Drug Delivery Device", Device},
	{204, "Eukaryote", Entity},
}
