package goquery

import (
	"regexp"

	"github.com/fwojciec/repometa"
)

// Federal universities.
var federalOverrides = []override{
	{
		name: "ufrgs", hosts: []string{"lume.ufrgs.br"},
		id:      identity("UFRGS", "Universidade Federal do Rio Grande do Sul"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.degree.program"), byLabel("Programa de Pós-Graduação / Curso"), ProgramFunc(ClassicProgram)),
		pdf:     pdfChain(linkPattern(regexp.MustCompile(`(?i)/bitstream/handle/10183/\d+/\d+\.pdf`)), PDFFunc(ClassicPDF)),
	},
	{
		name: "ufmg", hosts: []string{"repositorio.ufmg.br"},
		id:      identity("UFMG", "Universidade Federal de Minas Gerais"),
		family:  repometa.FamilySPA,
		program: chain(spaKeys("dc.publisher.program"), spaCollection("Programa de Pós-Graduação"), ProgramFunc(SPAProgram)),
		cleaner: cleanerWith(`(?i)\s*[-–]\s*ufmg\s*$`),
	},
	{
		name: "ufsc", hosts: []string{"repositorio.ufsc.br"},
		id:      identity("UFSC", "Universidade Federal de Santa Catarina"),
		family:  repometa.FamilyClassic,
		program: chain(fromNote("dc.description"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "unb", hosts: []string{"repositorio.unb.br"},
		id:      identity("UnB", "Universidade de Brasília"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.description.ppg"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ufpe", hosts: []string{"repositorio.ufpe.br", "attena.ufpe.br"},
		id:      identity("UFPE", "Universidade Federal de Pernambuco"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.publisher.programa"), ProgramFunc(ClassicProgram)),
		cleaner: cleanerWith(`(?i)^ppg\s*[-–]\s*`),
	},
	{
		name: "ufrj", hosts: []string{"pantheon.ufrj.br"},
		id:      identity("UFRJ", "Universidade Federal do Rio de Janeiro"),
		family:  repometa.FamilyClassic,
		program: chain(byLabel("Programa de Pós-Graduação / Unidade", "Unidade / Programa"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "uff", hosts: []string{"app.uff.br/riuff", "riuff.uff.br"},
		id:      identity("UFF", "Universidade Federal Fluminense"),
		family:  repometa.FamilyClassic,
		program: chain(crumbAt(-2), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ufba", hosts: []string{"repositorio.ufba.br"},
		id:      identity("UFBA", "Universidade Federal da Bahia"),
		family:  repometa.FamilyClassic,
		program: chain(byMeta("DC.publisher.program", "dc.publisher.program"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ufc", hosts: []string{"repositorio.ufc.br"},
		id:      identity("UFC", "Universidade Federal do Ceará"),
		family:  repometa.FamilyClassic,
		program: chain(fromNote("dc.description", "dc.description.abstract"), ProgramFunc(ClassicProgram)),
		pdf:     pdfChain(linkText("Visualizar/Abrir", "View/Open"), PDFFunc(ClassicPDF)),
	},
	{
		name: "ufpr", hosts: []string{"acervodigital.ufpr.br"},
		id:      identity("UFPR", "Universidade Federal do Paraná"),
		family:  repometa.FamilyClassic,
		program: chain(fromNote("dc.description.notes", "dc.description"), ProgramFunc(ClassicProgram)),
		cleaner: cleanerWith(`(?i)\.?\s*defesa\s*:.*$`),
	},
	{
		name: "ufv", hosts: []string{"locus.ufv.br"},
		id:      identity("UFV", "Universidade Federal de Viçosa"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.contributor.curso"), crumbAt(-1), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ufla", hosts: []string{"repositorio.ufla.br"},
		id:      identity("UFLA", "Universidade Federal de Lavras"),
		family:  repometa.FamilyClassic,
		program: chain(byMeta("DC.publisher.program"), ProgramFunc(ClassicProgram)),
		pdf:     pdfChain(metaLink("DC.identifier.uri.pdf"), PDFFunc(ClassicPDF)),
	},
	{
		name: "ufscar", hosts: []string{"repositorio.ufscar.br"},
		id:      identity("UFSCar", "Universidade Federal de São Carlos"),
		family:  repometa.FamilySPA,
		program: chain(spaKeys("dc.publisher.program", "dc.description.program"), ProgramFunc(SPAProgram)),
		pdf:     pdfChain(linkPattern(regexp.MustCompile(`(?i)/bitstreams/[0-9a-f-]+/download`)), PDFFunc(SPAPDF)),
	},
	{
		name: "ufsm", hosts: []string{"repositorio.ufsm.br"},
		id:      identity("UFSM", "Universidade Federal de Santa Maria"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.publisher.program"), byLabel("Programa"), ProgramFunc(ClassicProgram)),
		cleaner: cleanerWith(`(?i)^centro\s+de\s+[^,]+,\s*`),
	},
	{
		name: "ufu", hosts: []string{"repositorio.ufu.br"},
		id:     identity("UFU", "Universidade Federal de Uberlândia"),
		family: repometa.FamilyClassic,
		program: chain(
			byField("dc.publisher.program"),
			byCode(ufuCodes, ProgramFunc(allCrumbs), ProgramFunc(handleLinks)),
			ProgramFunc(ClassicProgram),
		),
	},
	{
		name: "ufg", hosts: []string{"repositorio.bc.ufg.br"},
		id:      identity("UFG", "Universidade Federal de Goiás"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.publisher.program"), fromNote("dc.description"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ufpa", hosts: []string{"repositorio.ufpa.br"},
		id:      identity("UFPA", "Universidade Federal do Pará"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.publisher.program"), crumbAt(-2), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ufam", hosts: []string{"tede.ufam.edu.br"},
		id:      identity("UFAM", "Universidade Federal do Amazonas"),
		family:  repometa.FamilyClassic,
		program: chain(byLabel("Programa"), ProgramFunc(ClassicProgram)),
		pdf:     pdfChain(linkPattern(regexp.MustCompile(`(?i)/tede/bitstream/tede/\d+/\d+/.*\.pdf`)), PDFFunc(ClassicPDF)),
	},
	{
		name: "ufrn", hosts: []string{"repositorio.ufrn.br"},
		id:      identity("UFRN", "Universidade Federal do Rio Grande do Norte"),
		family:  repometa.FamilySPA,
		program: chain(spaKeys("dc.publisher.program", "dc.publisher.department"), ProgramFunc(SPAProgram)),
		cleaner: cleanerWith(`(?i)^ppg\s*[-–]\s*`),
	},
	{
		name: "ufpb", hosts: []string{"repositorio.ufpb.br"},
		id:      identity("UFPB", "Universidade Federal da Paraíba"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.publisher.program"), bySelector("td.metadataFieldValue.dc_publisher_program"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ufjf", hosts: []string{"repositorio.ufjf.br"},
		id:      identity("UFJF", "Universidade Federal de Juiz de Fora"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.publisher.program"), ProgramFunc(ClassicProgram)),
		cleaner: cleanerWith(`(?i)\s*/\s*ufjf\s*$`),
	},
	{
		name: "ufop", hosts: []string{"repositorio.ufop.br"},
		id:      identity("UFOP", "Universidade Federal de Ouro Preto"),
		family:  repometa.FamilyClassic,
		program: chain(fromNote("dc.description"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ufes", hosts: []string{"repositorio.ufes.br"},
		id:      identity("UFES", "Universidade Federal do Espírito Santo"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.publisher.course"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ufms", hosts: []string{"repositorio.ufms.br"},
		id:     identity("UFMS", "Universidade Federal de Mato Grosso do Sul"),
		family: repometa.FamilySPA,
		program: chain(
			spaKeys("dc.publisher.program"),
			byCode(ufmsCodes, ProgramFunc(stateCollections), ProgramFunc(allCrumbs)),
			ProgramFunc(SPAProgram),
		),
	},
	{
		name: "ufmt", hosts: []string{"ri.ufmt.br"},
		id:      identity("UFMT", "Universidade Federal de Mato Grosso"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.publisher.program"), crumbAt(-1), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ufal", hosts: []string{"repositorio.ufal.br"},
		id:      identity("UFAL", "Universidade Federal de Alagoas"),
		family:  repometa.FamilyClassic,
		program: chain(byLabel("Programa de Pós-Graduação"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ufs", hosts: []string{"ri.ufs.br"},
		id:      identity("UFS", "Universidade Federal de Sergipe"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.publisher.program"), ProgramFunc(ClassicProgram)),
		pdf:     pdfChain(linkText("Visualizar/Abrir"), PDFFunc(ClassicPDF)),
	},
	{
		name: "ufpi", hosts: []string{"repositorio.ufpi.br"},
		id:      identity("UFPI", "Universidade Federal do Piauí"),
		family:  repometa.FamilyClassic,
		program: chain(fromNote("dc.description"), crumbAt(-2), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ufma", hosts: []string{"tedebc.ufma.br"},
		id:      identity("UFMA", "Universidade Federal do Maranhão"),
		family:  repometa.FamilyClassic,
		program: chain(byLabel("Programa"), ProgramFunc(ClassicProgram)),
		pdf:     pdfChain(linkPattern(regexp.MustCompile(`(?i)/jspui/bitstream/tede/\d+/\d+/.*\.pdf`)), PDFFunc(ClassicPDF)),
	},
	{
		name: "ufrr", hosts: []string{"repositorio.ufrr.br"},
		id:      identity("UFRR", "Universidade Federal de Roraima"),
		family:  repometa.FamilyClassic,
		program: chain(crumbAt(-1), ProgramFunc(ClassicProgram)),
	},
	{
		name: "unifap", hosts: []string{"repositorio.unifap.br"},
		id:      identity("UNIFAP", "Universidade Federal do Amapá"),
		family:  repometa.FamilyClassic,
		program: chain(fromNote("dc.description"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ufac", hosts: []string{"repositorio.ufac.br"},
		id:      identity("UFAC", "Universidade Federal do Acre"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.publisher.program"), ProgramFunc(ClassicProgram)),
		cleaner: cleanerWith(`(?i)^mestrado\s+profissional\s+em\s+`),
	},
	{
		name: "unir", hosts: []string{"ri.unir.br"},
		id:      identity("UNIR", "Universidade Federal de Rondônia"),
		family:  repometa.FamilyClassic,
		program: chain(crumbAt(-2), ProgramFunc(ClassicProgram)),
	},
	{
		name: "uft", hosts: []string{"repositorio.uft.edu.br"},
		id:      identity("UFT", "Universidade Federal do Tocantins"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.publisher.program"), ProgramFunc(ClassicProgram)),
		pdf:     pdfChain(linkText("Visualizar/Abrir", "Abrir"), PDFFunc(ClassicPDF)),
	},
	{
		name: "ufgd", hosts: []string{"repositorio.ufgd.edu.br"},
		id:     identity("UFGD", "Universidade Federal da Grande Dourados"),
		family: repometa.FamilyClassic,
		program: chain(
			byField("dc.publisher.program"),
			byCode(ufgdCodes, ProgramFunc(allCrumbs), ProgramFunc(handleLinks)),
			ProgramFunc(ClassicProgram),
		),
	},
	{
		name: "unifesp", hosts: []string{"repositorio.unifesp.br"},
		id:      identity("UNIFESP", "Universidade Federal de São Paulo"),
		family:  repometa.FamilySPA,
		program: chain(spaKeys("dc.publisher.program", "unifesp.program"), ProgramFunc(SPAProgram)),
	},
	{
		name: "ufabc", hosts: []string{"biblioteca.ufabc.edu.br"},
		id:      identity("UFABC", "Universidade Federal do ABC"),
		family:  repometa.FamilyGeneric,
		program: chain(byLabel("Programa", "Curso"), ProgramFunc(GenericProgram)),
		pdf:     pdfChain(linkPattern(regexp.MustCompile(`(?i)download\.php\?.*codArquivo=\d+`)), PDFFunc(GenericPDF)),
	},
	{
		name: "unifei", hosts: []string{"repositorio.unifei.edu.br"},
		id:      identity("UNIFEI", "Universidade Federal de Itajubá"),
		family:  repometa.FamilyClassic,
		program: chain(fromNote("dc.description"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ufsj", hosts: []string{"dspace.ufsj.edu.br"},
		id:      identity("UFSJ", "Universidade Federal de São João del-Rei"),
		family:  repometa.FamilyClassic,
		program: chain(byLabel("Programa de Pós-Graduação"), crumbAt(-1), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ufvjm", hosts: []string{"repositorio.ufvjm.edu.br"},
		id:      identity("UFVJM", "Universidade Federal dos Vales do Jequitinhonha e Mucuri"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.publisher.program"), ProgramFunc(ClassicProgram)),
		cleaner: cleanerWith(`(?i)\s*[-–]\s*stricto\s+sensu\s*$`),
	},
	{
		name: "ufrrj", hosts: []string{"rima.ufrrj.br"},
		id:      identity("UFRRJ", "Universidade Federal Rural do Rio de Janeiro"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.publisher.program"), fromNote("dc.description"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ufrpe", hosts: []string{"tede2.ufrpe.br"},
		id:      identity("UFRPE", "Universidade Federal Rural de Pernambuco"),
		family:  repometa.FamilyClassic,
		program: chain(byLabel("Programa"), ProgramFunc(ClassicProgram)),
		pdf:     pdfChain(linkPattern(regexp.MustCompile(`(?i)/bitstream/tede2/\d+/\d+/.*\.pdf`)), PDFFunc(ClassicPDF)),
	},
	{
		name: "ufersa", hosts: []string{"repositorio.ufersa.edu.br"},
		id:      identity("UFERSA", "Universidade Federal Rural do Semi-Árido"),
		family:  repometa.FamilyClassic,
		program: chain(crumbAt(-1), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ufcg", hosts: []string{"dspace.sti.ufcg.edu.br"},
		id:      identity("UFCG", "Universidade Federal de Campina Grande"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.publisher.program"), byLabel("Programa"), ProgramFunc(ClassicProgram)),
		cleaner: cleanerWith(`(?i)^pós-graduação\s+em\s+`),
	},
	{
		name: "ufpel", hosts: []string{"guaiaca.ufpel.edu.br"},
		id:      identity("UFPel", "Universidade Federal de Pelotas"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.publisher.program"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "furg", hosts: []string{"repositorio.furg.br"},
		id:      identity("FURG", "Universidade Federal do Rio Grande"),
		family:  repometa.FamilyClassic,
		program: chain(fromNote("dc.description"), crumbAt(-1), ProgramFunc(ClassicProgram)),
	},
	{
		name: "utfpr", hosts: []string{"riut.utfpr.edu.br", "repositorio.utfpr.edu.br"},
		id:      identity("UTFPR", "Universidade Tecnológica Federal do Paraná"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.publisher.program"), ProgramFunc(ClassicProgram)),
		who: unitsBy(ProgramFunc(unitText),
			unit{"Pato Branco", identity("UTFPR", "Universidade Tecnológica Federal do Paraná - Câmpus Pato Branco")},
			unit{"Ponta Grossa", identity("UTFPR", "Universidade Tecnológica Federal do Paraná - Câmpus Ponta Grossa")},
			unit{"Medianeira", identity("UTFPR", "Universidade Tecnológica Federal do Paraná - Câmpus Medianeira")},
			unit{"Campo Mourão", identity("UTFPR", "Universidade Tecnológica Federal do Paraná - Câmpus Campo Mourão")},
			unit{"Curitiba", identity("UTFPR", "Universidade Tecnológica Federal do Paraná - Câmpus Curitiba")},
		),
	},
	{
		name: "unipampa", hosts: []string{"repositorio.unipampa.edu.br", "dspace.unipampa.edu.br"},
		id:      identity("UNIPAMPA", "Universidade Federal do Pampa"),
		family:  repometa.FamilyClassic,
		program: chain(crumbAt(-2), ProgramFunc(ClassicProgram)),
	},
}

// ufuCodes map faculty codes to program names.
var ufuCodes = map[string]string{
	"FADIR": "Direito",
	"FAGEN": "Administração",
	"FACOM": "Ciência da Computação",
	"FAMAT": "Matemática",
	"FAEFI": "Educação Física",
	"FACED": "Educação",
	"FEELT": "Engenharia Elétrica",
	"FEMEC": "Engenharia Mecânica",
	"IGUFU": "Geografia",
	"INHIS": "História",
}

var ufmsCodes = map[string]string{
	"FADIR": "Direito",
	"FACOM": "Ciência da Computação",
	"FAED":  "Educação",
	"FAENG": "Engenharia",
	"INQUI": "Química",
}

var ufgdCodes = map[string]string{
	"FADIR": "Fronteiras e Direitos Humanos",
	"FACE":  "Agronegócios",
	"FCA":   "Agronomia",
	"FCH":   "História",
}
