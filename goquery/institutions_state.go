package goquery

import (
	"regexp"

	"github.com/fwojciec/repometa"
)

// State universities.
var stateOverrides = []override{
	{
		name: "usp", hosts: []string{"teses.usp.br"},
		id:      identity("USP", "Universidade de São Paulo"),
		family:  repometa.FamilyGeneric,
		program: chain(byLabel("Programa", "Área do Conhecimento", "Área de Concentração"), ProgramFunc(GenericProgram)),
		pdf:     pdfChain(linkPattern(regexp.MustCompile(`(?i)/teses/disponiveis/.*\.pdf$`)), PDFFunc(GenericPDF)),
	},
	{
		name: "unicamp", hosts: []string{"repositorio.unicamp.br"},
		id:      identity("UNICAMP", "Universidade Estadual de Campinas"),
		family:  repometa.FamilyGeneric,
		program: chain(byLabel("Programa", "Programa de Pós-Graduação"), ProgramFunc(GenericProgram)),
		pdf:     pdfChain(linkPattern(regexp.MustCompile(`(?i)/Busca/Download\?codigoArquivo=\d+`)), PDFFunc(GenericPDF)),
	},
	{
		name: "unesp", hosts: []string{"repositorio.unesp.br"},
		id:      identity("UNESP", "Universidade Estadual Paulista"),
		family:  repometa.FamilySPA,
		program: chain(spaKeys("unesp.graduateProgram", "unesp.program"), ProgramFunc(SPAProgram)),
		who:     unitsBy(chain(spaKeys("unesp.campus"), ProgramFunc(unitText)), unespCampuses...),
	},
	{
		name: "uerj", hosts: []string{"bdtd.uerj.br"},
		id:      identity("UERJ", "Universidade do Estado do Rio de Janeiro"),
		family:  repometa.FamilyClassic,
		program: chain(byLabel("Programa"), ProgramFunc(ClassicProgram)),
		pdf:     pdfChain(linkPattern(regexp.MustCompile(`(?i)/bitstream/1/\d+/\d+/.*\.pdf`)), PDFFunc(ClassicPDF)),
	},
	{
		name: "uel", hosts: []string{"repositorio.uel.br"},
		id:      identity("UEL", "Universidade Estadual de Londrina"),
		family:  repometa.FamilySPA,
		program: chain(spaKeys("uel.program", "dc.publisher.program"), ProgramFunc(SPAProgram)),
	},
	{
		name: "uem", hosts: []string{"repositorio.uem.br"},
		id:      identity("UEM", "Universidade Estadual de Maringá"),
		family:  repometa.FamilyClassic,
		program: chain(fromNote("dc.description"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "uepg", hosts: []string{"tede2.uepg.br"},
		id:      identity("UEPG", "Universidade Estadual de Ponta Grossa"),
		family:  repometa.FamilyClassic,
		program: chain(byLabel("Programa"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "unioeste", hosts: []string{"tede.unioeste.br"},
		id:      identity("UNIOESTE", "Universidade Estadual do Oeste do Paraná"),
		family:  repometa.FamilyClassic,
		program: chain(byLabel("Programa"), ProgramFunc(ClassicProgram)),
		who: unitsBy(ProgramFunc(unitText),
			unit{"Cascavel", identity("UNIOESTE", "Universidade Estadual do Oeste do Paraná - Campus Cascavel")},
			unit{"Toledo", identity("UNIOESTE", "Universidade Estadual do Oeste do Paraná - Campus Toledo")},
			unit{"Foz do Iguaçu", identity("UNIOESTE", "Universidade Estadual do Oeste do Paraná - Campus Foz do Iguaçu")},
			unit{"Marechal Cândido Rondon", identity("UNIOESTE", "Universidade Estadual do Oeste do Paraná - Campus Marechal Cândido Rondon")},
			unit{"Francisco Beltrão", identity("UNIOESTE", "Universidade Estadual do Oeste do Paraná - Campus Francisco Beltrão")},
		),
	},
	{
		name: "udesc", hosts: []string{"repositorio.udesc.br"},
		id:      identity("UDESC", "Universidade do Estado de Santa Catarina"),
		family:  repometa.FamilySPA,
		program: chain(spaKeys("udesc.programa", "dc.publisher.program"), ProgramFunc(SPAProgram)),
	},
	{
		name: "uefs", hosts: []string{"tede2.uefs.br"},
		id:      identity("UEFS", "Universidade Estadual de Feira de Santana"),
		family:  repometa.FamilyClassic,
		program: chain(byLabel("Programa"), crumbAt(-1), ProgramFunc(ClassicProgram)),
	},
	{
		name: "uesc", hosts: []string{"biblioteca.uesc.br"},
		id:      identity("UESC", "Universidade Estadual de Santa Cruz"),
		family:  repometa.FamilyGeneric,
		program: chain(byLabel("Programa", "Curso"), ProgramFunc(GenericProgram)),
		pdf:     pdfChain(linkPattern(regexp.MustCompile(`(?i)/biblioteca/bdtd/\d+\.pdf$`)), PDFFunc(GenericPDF)),
	},
	{
		name: "uece", hosts: []string{"siduece.uece.br"},
		id:      identity("UECE", "Universidade Estadual do Ceará"),
		family:  repometa.FamilyGeneric,
		program: chain(byLabel("Programa", "Curso"), ProgramFunc(GenericProgram)),
		pdf:     pdfChain(linkText("Arquivo", "Texto completo"), PDFFunc(GenericPDF)),
	},
	{
		name: "uern", hosts: []string{"repositorio.uern.br"},
		id:      identity("UERN", "Universidade do Estado do Rio Grande do Norte"),
		family:  repometa.FamilySPA,
		program: chain(spaKeys("dc.publisher.program", "uern.programa"), ProgramFunc(SPAProgram)),
	},
	{
		name: "uneb", hosts: []string{"saberaberto.uneb.br"},
		id:      identity("UNEB", "Universidade do Estado da Bahia"),
		family:  repometa.FamilyClassic,
		program: chain(crumbAt(-1), ProgramFunc(ClassicProgram)),
	},
	{
		name: "uema", hosts: []string{"repositorio.uema.br"},
		id:      identity("UEMA", "Universidade Estadual do Maranhão"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.publisher.program"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "uenf", hosts: []string{"uenf.br/pos-graduacao"},
		id:      identity("UENF", "Universidade Estadual do Norte Fluminense Darcy Ribeiro"),
		family:  repometa.FamilyGeneric,
		program: chain(crumbAt(2), ProgramFunc(GenericProgram)),
		cleaner: cleanerWith(`(?i)^pós-graduação\s+em\s+`),
	},
	{
		name: "uenp", hosts: []string{"uenp.edu.br/pos-graduacao"},
		id:      identity("UENP", "Universidade Estadual do Norte do Paraná"),
		family:  repometa.FamilyGeneric,
		program: chain(bySelector(".page-header h1", "h1.entry-title"), ProgramFunc(GenericProgram)),
	},
	{
		name: "uea", hosts: []string{"ri.uea.edu.br"},
		id:      identity("UEA", "Universidade do Estado do Amazonas"),
		family:  repometa.FamilyClassic,
		program: chain(fromNote("dc.description"), ProgramFunc(ClassicProgram)),
	},
}

var unespCampuses = []unit{
	{"Araraquara", identity("UNESP", "Universidade Estadual Paulista - Câmpus de Araraquara")},
	{"Botucatu", identity("UNESP", "Universidade Estadual Paulista - Câmpus de Botucatu")},
	{"Bauru", identity("UNESP", "Universidade Estadual Paulista - Câmpus de Bauru")},
	{"Rio Claro", identity("UNESP", "Universidade Estadual Paulista - Câmpus de Rio Claro")},
	{"Presidente Prudente", identity("UNESP", "Universidade Estadual Paulista - Câmpus de Presidente Prudente")},
	{"São José do Rio Preto", identity("UNESP", "Universidade Estadual Paulista - Câmpus de São José do Rio Preto")},
	{"Jaboticabal", identity("UNESP", "Universidade Estadual Paulista - Câmpus de Jaboticabal")},
	{"Guaratinguetá", identity("UNESP", "Universidade Estadual Paulista - Câmpus de Guaratinguetá")},
	{"Ilha Solteira", identity("UNESP", "Universidade Estadual Paulista - Câmpus de Ilha Solteira")},
	{"Marília", identity("UNESP", "Universidade Estadual Paulista - Câmpus de Marília")},
	{"Franca", identity("UNESP", "Universidade Estadual Paulista - Câmpus de Franca")},
	{"Assis", identity("UNESP", "Universidade Estadual Paulista - Câmpus de Assis")},
}
