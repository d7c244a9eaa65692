package awards

var awardExamples = map[string][]string{
	"CO Coin": {
		`Being an exemplary Transport Operator from Alpha COY, CPL JOHN TAN consistently demonstrated outstanding professionalism and dedication in his duties. CPL TAN expertly managed vehicle maintenance schedules, ensuring 100% operational readiness throughout the year. His meticulous attention to detail prevented multiple potential breakdowns, saving significant downtime and costs. During Exercise Thunderstrike, CPL TAN volunteered for extended shifts, enabling seamless logistics support for the entire battalion. His positive attitude and reliability inspired his peers to maintain high standards. CPL TAN's commitment to excellence and service beyond self makes him a deserving recipient of the Commanding Officer's Coin.`,
		`Being a dedicated Transport Supervisor from Charlie COY, 3SG SARAH LIM displayed exceptional leadership and technical competence. 3SG LIM implemented a new preventive maintenance system that increased vehicle availability by 15%. She mentored junior operators, developing their skills and confidence in complex driving scenarios. When a critical mission required immediate deployment, 3SG LIM worked through the night to prepare additional vehicles, ensuring mission success. Her proactive approach and unwavering commitment to excellence consistently exceeded expectations. 3SG LIM's outstanding contributions exemplify the qualities deserving of the Commanding Officer's Coin.`,
	},
	"RSM Coin": {
		`Being an outstanding Transport Leader from HQ COY, MSG DAVID WONG demonstrated exemplary leadership and professionalism throughout his tenure. MSG WONG successfully led his team through multiple high-stakes operations, maintaining zero safety incidents over 12 months. He developed innovative training programs that improved team competency by 25%. During a critical shortage of personnel, MSG WONG stepped up to manage multiple sections simultaneously, ensuring seamless operations. His ability to inspire and develop his subordinates created a culture of excellence within the company. MSG WONG's dedication, leadership, and commitment to the unit's mission make him a worthy recipient of the Regimental Sergeant Major's Coin.`,
		`Being a highly competent Transport Supervisor from Mandai Hill Node, 2SG MICHAEL LEE consistently exemplified professionalism and dedication. 2SG LEE spearheaded safety initiatives that resulted in perfect accident-free records for eight consecutive months. He mentored and trained 15 new operators, accelerating their readiness for operational deployment. When faced with equipment failures during critical operations, 2SG LEE implemented creative solutions that minimized disruption. His positive leadership and technical expertise earned the respect of both peers and superiors. 2SG LEE's consistent excellence and service to the unit make him deserving of the Regimental Sergeant Major's Coin.`,
	},
	"CTO Coin": {
		`Being an exceptional Transport Operator from Khatib Node, CPL JAMES CHEN demonstrated outstanding operational excellence and dedication. CPL CHEN achieved a Gold IPPT with 85 points and maintained a healthy BMI of 22.5, exemplifying physical readiness. He attained an ATP score of 90, showcasing his professional competence. Throughout the year, CPL CHEN led numerous critical convoy operations with perfect safety records, ensuring timely mission completion. His meticulous planning and attention to detail prevented potential incidents during challenging road conditions. CPL CHEN mentored junior operators, sharing his expertise and fostering a culture of excellence. During Exercise Vigilance, he volunteered for extended duties, demonstrating selfless service. His consistent professionalism, technical expertise, and commitment to operational excellence make CPL CHEN a deserving recipient of the Chief Transport Officer's Coin.`,
		`Being a highly dedicated Transport Supervisor from Kranji Node, 3SG EMILY TAN consistently exceeded performance expectations throughout the year. 3SG TAN achieved a Gold IPPT with 88 points, maintained an optimal BMI of 21.8, and scored 92 on her ATP assessment, demonstrating exemplary fitness and competence. She revolutionized the node's vehicle management system, improving operational readiness from 85% to 98%. 3SG TAN led her team through complex multi-vehicle operations with zero defects, earning commendations from senior commanders. Her innovative approach to training new operators reduced qualification time by 20% while maintaining high standards. When critical equipment failures threatened mission timelines, 3SG TAN coordinated rapid repairs and alternative solutions, ensuring zero delays. Her leadership, technical mastery, and unwavering dedication to excellence make 3SG TAN worthy of the Chief Transport Officer's Coin.`,
	},
	"FSM Coin": {
		`Being a distinguished Platoon Commander from Alpha COY, LTA MARCUS LIM demonstrated exceptional leadership and commitment to the Formation Support Mission. LTA LIM achieved a Gold IPPT with 90 points, maintained a healthy BMI of 22.0, and scored 95 on his ATP, exemplifying physical and professional readiness. He successfully planned and executed 20 major logistics operations, supporting battalion-level exercises with flawless coordination. LTA LIM's innovative convoy management techniques reduced transport time by 15% while maintaining safety standards. He developed comprehensive training programs that elevated his platoon's operational capabilities significantly. During a critical emergency deployment, LTA LIM coordinated resources across multiple nodes, ensuring 100% mission success within tight timelines. His strategic thinking, leadership excellence, and dedication to the formation's success make LTA LIM deserving of the Formation Support Manager's Coin.`,
		`Being an exemplary Transport Leader from Combat Sustainment Coy, MSG RACHEL KOH displayed outstanding dedication and leadership throughout the operational year. MSG KOH achieved a Gold IPPT with 87 points, maintained a BMI of 21.5, and excelled in her ATP with a score of 93, demonstrating holistic readiness. She led the successful integration of new vehicle systems, training 30 personnel and achieving full operational capability ahead of schedule. MSG KOH coordinated complex multi-node operations during Exercise Forging Sabre, enabling seamless logistics support for 500+ personnel. Her mentorship developed three subordinates who later received individual awards for excellence. When equipment shortages threatened operational readiness, MSG KOH implemented creative solutions using cross-node resource sharing, maintaining 95% availability. Her leadership, innovation, and commitment to mission success make MSG KOH worthy of the Formation Support Manager's Coin.`,
	},
	"BSOM": {
		`Being an outstanding Transport Operator from Charlie COY, CPL ADRIAN PANG consistently demonstrated exceptional dedication and professionalism throughout the year. CPL PANG maintained perfect vehicle maintenance records, achieving 100% serviceability for his assigned fleet. He identified and reported critical safety issues that prevented three potential accidents, earning recognition from the safety committee. CPL PANG volunteered for additional duties during personnel shortages, ensuring uninterrupted operations during peak periods. His positive attitude and reliability made him a role model for junior operators. During night operations, CPL PANG's vigilance and adherence to procedures ensured mission success in challenging conditions. His consistent excellence and commitment to the unit's success make him a deserving recipient of the Battalion Service Operations Medal.`,
		`Being a dedicated Transport Supervisor from HQ COY, 3SG KEVIN LIM exemplified professionalism and commitment throughout his service. 3SG LIM implemented a new vehicle inspection checklist that improved fault detection rates by 30%. He conducted thorough training sessions for 12 new operators, ensuring they met operational standards efficiently. 3SG LIM's proactive approach to maintenance scheduling reduced unexpected breakdowns by 40%, significantly improving operational readiness. When faced with resource constraints, he coordinated effectively with other sections to ensure mission priorities were met without compromise. His leadership during Exercise Safeguard enabled smooth logistics support despite challenging weather conditions. 3SG LIM's dedication, initiative, and consistent performance make him worthy of the Battalion Service Operations Medal.`,
	},
	Other: {
		`Being a professional and dedicated serviceman from [UNIT], [RANK] [NAME] consistently demonstrated outstanding commitment to excellence. [RANK] [FIRST_NAME] successfully completed all assigned tasks with meticulous attention to detail and unwavering dedication. His/Her contributions significantly enhanced the unit's operational capabilities and mission readiness. Through innovative problem-solving and proactive initiative, [RANK] [FIRST_NAME] overcame numerous challenges while maintaining the highest standards of professionalism. The exemplary conduct and consistent performance displayed by [RANK] [NAME] make him/her a deserving recipient of this award.`,
	},
}

var citationExamples = map[string][]string{
	"CTO Coin": {
		`For exceptional dedication and professionalism as Transport Operator. CPL CHEN demonstrated outstanding operational excellence, achieving Gold IPPT and perfect safety records. His mentorship and technical expertise significantly enhanced unit readiness and capability.`,
		`For exemplary leadership and innovation as Transport Supervisor. 3SG TAN revolutionized vehicle management systems, improved readiness to 98%, and trained operators with exceptional efficiency. Her dedication to excellence significantly strengthened operational capabilities.`,
	},
	"FSM Coin": {
		`For distinguished leadership in formation support operations. LTA LIM planned and executed 20 major logistics operations flawlessly, demonstrating exceptional coordination and strategic thinking. His innovative approaches enhanced formation-wide operational efficiency.`,
		`For outstanding leadership and dedication to mission success. MSG KOH led successful system integration, trained 30 personnel, and coordinated complex multi-node operations. Her innovation and mentorship significantly elevated formation support capabilities.`,
	},
}
