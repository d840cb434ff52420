package wfs

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/paulmach/orb"

	"github.com/geonet-geomatica/Repositorio/internal/types"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

	nsWFS   = "http://www.opengis.net/wfs"
	nsOGC   = "http://www.opengis.net/ogc"
	nsGML   = "http://www.opengis.net/gml"
	nsXSI   = "http://www.w3.org/2001/XMLSchema-instance"
	nsXLink = "http://www.w3.org/1999/xlink"
	nsXSD   = "http://www.w3.org/2001/XMLSchema"

	wfsSchemaLocation = "http://schemas.opengis.net/wfs/1.1.0/wfs.xsd"
	gmlSchemaLocation = "http://schemas.opengis.net/gml/3.1.1/base/gml.xsd"

	geometryElement = "geometry"
)

// MendozaBounds is the advertised extent of the station network
var MendozaBounds = orb.Bound{
	Min: orb.Point{-70.0, -35.0},
	Max: orb.Point{-68.0, -32.0},
}

// Options describes the single feature type this service publishes
type Options struct {
	TypeName string
	SRSName  string

	// Title and Abstract describe the service itself
	Title    string
	Abstract string

	FeatureTitle    string
	FeatureAbstract string
	Keywords        string
	Bounds          orb.Bound

	// Attributes lists the feature attributes in emission order
	Attributes []string
}

// DefaultOptions returns the metadata of the Estaciones feature type
func DefaultOptions() Options {
	return Options{
		TypeName:        DefaultTypeName,
		SRSName:         DefaultSRSName,
		Title:           "WFS de Estaciones Agroclimáticas",
		Abstract:        "Servicio WFS que proporciona datos climáticos en formato estándar.",
		FeatureTitle:    "Estaciones Agroclimáticas",
		FeatureAbstract: "Estaciones meteorológicas de Mendoza",
		Keywords:        "Clima, Estaciones, WFS, Agroclimática",
		Bounds:          MendozaBounds,
	}
}

// Translator renders capabilities, schema and feature documents. All text
// goes through EscapeXML, so the documents are ASCII-only.
type Translator struct {
	opts        Options
	typeElement string
}

func NewTranslator(opts Options) *Translator {
	defaults := DefaultOptions()
	if opts.TypeName == "" {
		opts.TypeName = defaults.TypeName
	}
	if opts.SRSName == "" {
		opts.SRSName = defaults.SRSName
	}
	if opts.Bounds.IsZero() {
		opts.Bounds = defaults.Bounds
	}
	return &Translator{
		opts:        opts,
		typeElement: ElementName(opts.TypeName),
	}
}

// Capabilities returns the WFS 1.1.0 capabilities document. Operation URLs
// point at baseURL, the externally visible address of the WFS endpoint.
func (t *Translator) Capabilities(baseURL string) []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)

	fmt.Fprintf(&b, `<wfs:WFS_Capabilities xmlns:wfs=%q xmlns:ogc=%q xmlns:gml=%q xmlns:xsi=%q xmlns:xlink=%q version="1.1.0" xsi:schemaLocation="%s %s">`+"\n",
		nsWFS, nsOGC, nsGML, nsXSI, nsXLink, nsWFS, wfsSchemaLocation)

	b.WriteString("  <Service>\n")
	b.WriteString("    <Name>WFS</Name>\n")
	writeElement(&b, 4, "Title", t.opts.Title)
	writeElement(&b, 4, "Abstract", t.opts.Abstract)
	writeElement(&b, 4, "Keywords", t.opts.Keywords)
	b.WriteString("    <Fees>NONE</Fees>\n")
	b.WriteString("    <AccessConstraints>NONE</AccessConstraints>\n")
	b.WriteString("  </Service>\n")

	b.WriteString("  <Capability>\n")
	b.WriteString("    <Request>\n")
	for _, op := range []RequestType{RequestGetCapabilities, RequestDescribeFeatureType, RequestGetFeature} {
		href := EscapeXML(baseURL + "?SERVICE=WFS&REQUEST=" + op.String())
		fmt.Fprintf(&b, "      <%s>\n", op)
		b.WriteString("        <DCPType>\n")
		b.WriteString("          <HTTP>\n")
		fmt.Fprintf(&b, "            <Get xlink:href=\"%s\"/>\n", href)
		b.WriteString("          </HTTP>\n")
		b.WriteString("        </DCPType>\n")
		fmt.Fprintf(&b, "      </%s>\n", op)
	}
	b.WriteString("    </Request>\n")
	b.WriteString("  </Capability>\n")

	bounds := t.opts.Bounds
	b.WriteString("  <FeatureTypeList>\n")
	b.WriteString("    <FeatureType>\n")
	writeElement(&b, 6, "Name", t.opts.TypeName)
	writeElement(&b, 6, "Title", t.opts.FeatureTitle)
	writeElement(&b, 6, "Abstract", t.opts.FeatureAbstract)
	writeElement(&b, 6, "DefaultSRS", t.opts.SRSName)
	fmt.Fprintf(&b, "      <LatLongBoundingBox minx=\"%s\" miny=\"%s\" maxx=\"%s\" maxy=\"%s\"/>\n",
		formatBound(bounds.Min.X()), formatBound(bounds.Min.Y()),
		formatBound(bounds.Max.X()), formatBound(bounds.Max.Y()))
	b.WriteString("    </FeatureType>\n")
	b.WriteString("  </FeatureTypeList>\n")

	b.WriteString("</wfs:WFS_Capabilities>\n")
	return b.Bytes()
}

// DescribeFeatureType returns the XML Schema of the published feature type
func (t *Translator) DescribeFeatureType() []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)

	fmt.Fprintf(&b, `<xsd:schema xmlns:xsd=%q xmlns:gml=%q elementFormDefault="qualified">`+"\n", nsXSD, nsGML)
	fmt.Fprintf(&b, `  <xsd:import namespace=%q schemaLocation=%q/>`+"\n", nsGML, gmlSchemaLocation)

	fmt.Fprintf(&b, "  <xsd:complexType name=\"%sType\">\n", t.typeElement)
	b.WriteString("    <xsd:complexContent>\n")
	b.WriteString("      <xsd:extension base=\"gml:AbstractFeatureType\">\n")
	b.WriteString("        <xsd:sequence>\n")
	for _, name := range t.opts.Attributes {
		fmt.Fprintf(&b, "          <xsd:element name=\"%s\" minOccurs=\"0\">\n", ElementName(name))
		fmt.Fprintf(&b, "            <xsd:annotation><xsd:documentation>%s</xsd:documentation></xsd:annotation>\n", EscapeXML(name))
		b.WriteString("            <xsd:complexType>\n")
		b.WriteString("              <xsd:simpleContent>\n")
		b.WriteString("                <xsd:extension base=\"xsd:string\">\n")
		b.WriteString("                  <xsd:attribute name=\"name\" type=\"xsd:string\" use=\"optional\"/>\n")
		b.WriteString("                </xsd:extension>\n")
		b.WriteString("              </xsd:simpleContent>\n")
		b.WriteString("            </xsd:complexType>\n")
		b.WriteString("          </xsd:element>\n")
	}
	fmt.Fprintf(&b, "          <xsd:element name=\"%s\" type=\"gml:PointPropertyType\"/>\n", geometryElement)
	b.WriteString("        </xsd:sequence>\n")
	b.WriteString("      </xsd:extension>\n")
	b.WriteString("    </xsd:complexContent>\n")
	b.WriteString("  </xsd:complexType>\n")

	fmt.Fprintf(&b, "  <xsd:element name=\"%s\" type=\"%sType\" substitutionGroup=\"gml:_Feature\"/>\n",
		t.typeElement, t.typeElement)
	b.WriteString("</xsd:schema>\n")
	return b.Bytes()
}

// FeatureCollection renders fc as a wfs:FeatureCollection with one
// wfs:member per feature. Each attribute becomes a child element named by
// ElementName and carrying the original name in its name attribute.
func (t *Translator) FeatureCollection(fc *types.FeatureCollection) []byte {
	var features []types.Feature
	if fc != nil {
		features = fc.Features
	}

	var b bytes.Buffer
	b.WriteString(xmlHeader)

	fmt.Fprintf(&b, `<wfs:FeatureCollection xmlns:wfs=%q xmlns:gml=%q numberOfFeatures="%d">`+"\n",
		nsWFS, nsGML, len(features))

	for _, f := range features {
		b.WriteString("  <wfs:member>\n")
		fmt.Fprintf(&b, "    <%s gml:id=\"%s.%d\">\n", t.typeElement, t.typeElement, f.ID)
		for _, a := range f.Attributes {
			el := ElementName(a.Name)
			fmt.Fprintf(&b, "      <%s name=\"%s\">%s</%s>\n", el, EscapeXML(a.Name), EscapeXML(a.Value), el)
		}
		fmt.Fprintf(&b, "      <%s type=\"Point\"><coordinates>%s</coordinates></%s>\n",
			geometryElement, formatPosition(orb.Point{f.Geometry.Longitude, f.Geometry.Latitude}), geometryElement)
		fmt.Fprintf(&b, "    </%s>\n", t.typeElement)
		b.WriteString("  </wfs:member>\n")
	}

	b.WriteString("</wfs:FeatureCollection>\n")
	return b.Bytes()
}

func writeElement(b *bytes.Buffer, indent int, name, value string) {
	for i := 0; i < indent; i++ {
		b.WriteByte(' ')
	}
	fmt.Fprintf(b, "<%s>%s</%s>\n", name, EscapeXML(value), name)
}

// formatPosition writes "lng lat" with the shortest exact representation
func formatPosition(p orb.Point) string {
	return strconv.FormatFloat(p.Lon(), 'f', -1, 64) + " " + strconv.FormatFloat(p.Lat(), 'f', -1, 64)
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
